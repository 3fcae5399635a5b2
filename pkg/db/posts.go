package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dtnitsch/llm-blog-writer/internal/common"
	"github.com/dtnitsch/llm-blog-writer/models"
)

// SourceHTML is stored as the source of posts generated from inline markup.
const SourceHTML = "html"

// ErrPostNotFound is returned by GetPost for unknown ids.
var ErrPostNotFound = errors.New("post not found")

// Post is an archived pipeline run.
type Post struct {
	PostID         int64                 `yaml:"post_id"`
	Source         string                `yaml:"source"`
	SourceHash     string                `yaml:"source_hash"`
	Title          string                `yaml:"title"`
	Keywords       []string              `yaml:"keywords"`
	BlogPost       string                `yaml:"blog_post"`
	CommentSummary models.CommentInsight `yaml:"comment_summary"`
	Language       string                `yaml:"language,omitempty"`
	CreatedAt      time.Time             `yaml:"created_at"`
}

// NewPost builds an archive record for a run. The URL wins when both a URL
// and markup were given, matching how the pipeline picks its source.
func NewPost(sourceURL, sourceHTML string, result *models.PipelineResult) *Post {
	post := &Post{
		Source:         SourceHTML,
		SourceHash:     common.ContentHash([]byte(sourceHTML)),
		Title:          result.Title,
		Keywords:       result.Keywords,
		BlogPost:       result.BlogPost,
		CommentSummary: result.CommentSummary,
		Language:       result.Parsed.Language,
	}
	if u := common.SanitizeURL(sourceURL); u != "" {
		post.Source = u
		post.SourceHash = common.ContentHash([]byte(u))
	}
	return post
}

// InsertURL parses and inserts a URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	var existingID int64
	err = db.QueryRow("SELECT url_id FROM urls WHERE original_url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	// scheme + host + path, no query/fragment
	canonicalURL := fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)

	result, err := db.Exec(`
		INSERT INTO urls (original_url, canonical_url, scheme, domain, path)
		VALUES (?, ?, ?, ?, ?)
	`, rawURL, canonicalURL, parsed.Scheme, parsed.Host, parsed.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// InsertPost stores post and returns its post_id. PostID and CreatedAt are
// filled in on success.
func (db *DB) InsertPost(post *Post) (int64, error) {
	keywords := post.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal keywords: %w", err)
	}
	summaryJSON, err := json.Marshal(post.CommentSummary.Clone())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal comment summary: %w", err)
	}

	var urlID sql.NullInt64
	if post.Source != SourceHTML {
		id, err := db.InsertURL(post.Source)
		if err != nil {
			return 0, err
		}
		urlID = sql.NullInt64{Int64: id, Valid: true}
	}

	createdAt := time.Now().UTC()
	result, err := db.Exec(`
		INSERT INTO posts (url_id, source, source_hash, title, keywords, blog_post, comment_summary, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, urlID, post.Source, post.SourceHash, post.Title, string(keywordsJSON), post.BlogPost, string(summaryJSON), post.Language, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	postID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get post ID: %w", err)
	}
	post.PostID = postID
	post.CreatedAt = createdAt
	return postID, nil
}

const postColumns = `post_id, source, source_hash, title, keywords, blog_post, comment_summary, COALESCE(language, ''), created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var (
		post         Post
		keywordsJSON string
		summaryJSON  string
	)
	if err := row.Scan(&post.PostID, &post.Source, &post.SourceHash, &post.Title,
		&keywordsJSON, &post.BlogPost, &summaryJSON, &post.Language, &post.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &post.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords of post %d: %w", post.PostID, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &post.CommentSummary); err != nil {
		return nil, fmt.Errorf("failed to decode comment summary of post %d: %w", post.PostID, err)
	}
	post.CommentSummary = post.CommentSummary.Clone()
	return &post, nil
}

// GetPost returns the post with the given id.
func (db *DB) GetPost(postID int64) (*Post, error) {
	row := db.QueryRow("SELECT "+postColumns+" FROM posts WHERE post_id = ?", postID)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrPostNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// ListRecentPosts returns up to limit posts, newest first.
func (db *DB) ListRecentPosts(limit int) ([]Post, error) {
	if limit <= 0 {
		return []Post{}, nil
	}

	rows, err := db.Query("SELECT "+postColumns+" FROM posts ORDER BY created_at DESC, post_id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// FindPostsBySource returns the posts whose source hashes to sourceHash,
// newest first.
func (db *DB) FindPostsBySource(sourceHash string) ([]Post, error) {
	rows, err := db.Query("SELECT "+postColumns+" FROM posts WHERE source_hash = ? ORDER BY created_at DESC, post_id DESC", sourceHash)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
