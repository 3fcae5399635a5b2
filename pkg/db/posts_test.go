package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/llm-blog-writer/internal/common"
	"github.com/dtnitsch/llm-blog-writer/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func testResult(title string) *models.PipelineResult {
	insight := models.EmptyCommentInsight()
	insight.Highlights = []string{"great tips"}
	insight.PainPoints = []string{"too long"}
	insight.Tone = "중립적"
	return &models.PipelineResult{
		Parsed:         models.PageSummary{Title: title, Language: "ko"},
		CommentSummary: insight,
		Title:          title,
		BlogPost:       "# " + title + "\n\n## 들어가며",
		Keywords:       []string{"go", "channels"},
	}
}

func TestNewPost(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		html       string
		wantSource string
		wantHash   string
	}{
		{
			name:       "url source",
			url:        "https://example.com/post",
			wantSource: "https://example.com/post",
			wantHash:   common.ContentHash([]byte("https://example.com/post")),
		},
		{
			name:       "markup source",
			html:       "<title>Test</title>",
			wantSource: SourceHTML,
			wantHash:   common.ContentHash([]byte("<title>Test</title>")),
		},
		{
			name:       "url wins over markup",
			url:        " https://example.com/a ",
			html:       "<title>Test</title>",
			wantSource: "https://example.com/a",
			wantHash:   common.ContentHash([]byte("https://example.com/a")),
		},
		{
			name:       "url is sanitized like the history lookup",
			url:        "https://example.com/a, ",
			wantSource: "https://example.com/a",
			wantHash:   common.ContentHash([]byte("https://example.com/a")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := NewPost(tt.url, tt.html, testResult("Test"))
			if post.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", post.Source, tt.wantSource)
			}
			if post.SourceHash != tt.wantHash {
				t.Errorf("SourceHash = %q, want %q", post.SourceHash, tt.wantHash)
			}
			if post.Language != "ko" {
				t.Errorf("Language = %q, want %q", post.Language, "ko")
			}
		})
	}
}

func TestInsertAndGetPost(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	post := NewPost("https://example.com/post", "", testResult("Test"))
	id, err := db.InsertPost(post)
	if err != nil {
		t.Fatalf("InsertPost() error = %v", err)
	}
	if id == 0 || post.PostID != id {
		t.Fatalf("InsertPost() id = %d, post.PostID = %d", id, post.PostID)
	}

	got, err := db.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if got.Title != "Test" || got.Source != "https://example.com/post" {
		t.Errorf("GetPost() = %+v", got)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "go" || got.Keywords[1] != "channels" {
		t.Errorf("Keywords = %v, want [go channels]", got.Keywords)
	}
	if got.CommentSummary.Tone != "중립적" {
		t.Errorf("Tone = %q, want %q", got.CommentSummary.Tone, "중립적")
	}
	if got.CommentSummary.Wishes == nil {
		t.Error("Wishes should be empty, not nil")
	}
	if len(got.CommentSummary.PainPoints) != 1 || got.CommentSummary.PainPoints[0] != "too long" {
		t.Errorf("PainPoints = %v", got.CommentSummary.PainPoints)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestGetPost_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetPost(42)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("GetPost() error = %v, want ErrPostNotFound", err)
	}
}

func TestInsertPost_ReusesURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 0; i < 2; i++ {
		if _, err := db.InsertPost(NewPost("https://example.com/post", "", testResult("Test"))); err != nil {
			t.Fatalf("InsertPost() error = %v", err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM urls").Scan(&count); err != nil {
		t.Fatalf("count urls: %v", err)
	}
	if count != 1 {
		t.Errorf("urls count = %d, want 1", count)
	}
}

func TestInsertPost_MarkupHasNoURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := db.InsertPost(NewPost("", "<title>Test</title>", testResult("Test")))
	if err != nil {
		t.Fatalf("InsertPost() error = %v", err)
	}

	var urlCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts WHERE post_id = ? AND url_id IS NULL", id).Scan(&urlCount); err != nil {
		t.Fatalf("query: %v", err)
	}
	if urlCount != 1 {
		t.Error("markup post should have no url_id")
	}
}

func TestListRecentPosts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := db.InsertPost(NewPost("", "<title>"+title+"</title>", testResult(title))); err != nil {
			t.Fatalf("InsertPost() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all newest first", limit: 10, want: []string{"third", "second", "first"}},
		{name: "limited", limit: 2, want: []string{"third", "second"}},
		{name: "zero limit", limit: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := db.ListRecentPosts(tt.limit)
			if err != nil {
				t.Fatalf("ListRecentPosts() error = %v", err)
			}
			if len(posts) != len(tt.want) {
				t.Fatalf("ListRecentPosts() returned %d posts, want %d", len(posts), len(tt.want))
			}
			for i, want := range tt.want {
				if posts[i].Title != want {
					t.Errorf("posts[%d].Title = %q, want %q", i, posts[i].Title, want)
				}
			}
		})
	}
}

func TestFindPostsBySource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, u := range []string{"https://a.example.com", "https://b.example.com", "https://a.example.com"} {
		if _, err := db.InsertPost(NewPost(u, "", testResult(u))); err != nil {
			t.Fatalf("InsertPost() error = %v", err)
		}
	}

	posts, err := db.FindPostsBySource(common.ContentHash([]byte("https://a.example.com")))
	if err != nil {
		t.Fatalf("FindPostsBySource() error = %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("FindPostsBySource() returned %d posts, want 2", len(posts))
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive", "posts.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
	if _, err := database.InsertPost(NewPost("", "<p>x</p>", testResult("x"))); err != nil {
		t.Fatalf("InsertPost() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	posts, err := reopened.ListRecentPosts(5)
	if err != nil {
		t.Fatalf("ListRecentPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("reopened archive has %d posts, want 1", len(posts))
	}
}
