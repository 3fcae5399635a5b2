package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/llm-blog-writer/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		wantTitle string
		wantMeta  string
		wantBody  string
	}{
		{
			name:      "title and description",
			markup:    `<html><head><title>Test</title><meta name="description" content="desc"></head><body><p>Hello</p></body></html>`,
			wantTitle: "Test",
			wantMeta:  "desc",
			wantBody:  "Hello",
		},
		{
			name:      "no title",
			markup:    `<html><body><h1>Headline</h1><p>Body</p></body></html>`,
			wantTitle: "",
			wantMeta:  "",
			wantBody:  "Headline\nBody",
		},
		{
			name:      "meta name is case-insensitive and trimmed",
			markup:    `<html><head><meta name="Description" content="  spaced out  "></head><body></body></html>`,
			wantTitle: "",
			wantMeta:  "spaced out",
			wantBody:  "",
		},
		{
			name:      "first title wins",
			markup:    `<html><head><title>  First  </title><title>Second</title></head><body>x</body></html>`,
			wantTitle: "First",
			wantMeta:  "",
			wantBody:  "x",
		},
		{
			name:      "title wrapped across lines",
			markup:    "<html><head><title>\n  Go 입문\n  가이드\n</title></head><body></body></html>",
			wantTitle: "Go 입문 가이드",
			wantMeta:  "",
			wantBody:  "",
		},
		{
			name:      "scripts and styles are dropped",
			markup:    `<html><body><script>var a = 1;</script><style>p{}</style><noscript>enable js</noscript><p>  Visible  </p><template><p>hidden</p></template></body></html>`,
			wantTitle: "",
			wantMeta:  "",
			wantBody:  "Visible",
		},
		{
			name:      "nested text nodes become lines",
			markup:    `<body><div>One <b>Two</b></div><ul><li>Three</li><li> </li></ul></body>`,
			wantTitle: "",
			wantMeta:  "",
			wantBody:  "One\nTwo\nThree",
		},
		{
			name:      "fragment without html wrapper",
			markup:    `<title>Frag</title><p>text</p>`,
			wantTitle: "Frag",
			wantMeta:  "",
			wantBody:  "text",
		},
	}

	p := &Parser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := p.Parse("", tt.markup)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if page.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", page.Title, tt.wantTitle)
			}
			if page.MetaDescription != tt.wantMeta {
				t.Errorf("MetaDescription = %q, want %q", page.MetaDescription, tt.wantMeta)
			}
			if page.BodyText != tt.wantBody {
				t.Errorf("BodyText = %q, want %q", page.BodyText, tt.wantBody)
			}
		})
	}
}

func TestParse_RecordsSourceURL(t *testing.T) {
	p := &Parser{}
	page, err := p.Parse("https://example.com/post", "<title>T</title>")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if page.SourceURL != "https://example.com/post" {
		t.Errorf("SourceURL = %q", page.SourceURL)
	}
}

func TestParse_EmptyMarkup(t *testing.T) {
	p := &Parser{}
	page, err := p.Parse("", "")
	if err != nil {
		if !errors.Is(err, models.ErrFetchFailure) {
			t.Fatalf("Parse() error = %v, want ErrFetchFailure", err)
		}
		return
	}
	if page.Title != "" || page.BodyText != "" {
		t.Errorf("Parse(\"\") = %+v, want empty page", page)
	}
}

func TestEnrich(t *testing.T) {
	markup := `<html><head>
<title>Go 동시성 패턴</title>
<meta property="og:site_name" content="개발 블로그">
<meta name="author" content="Kim">
</head><body><article><h1>Go 동시성 패턴</h1>` +
		strings.Repeat("<p>채널과 고루틴으로 작업을 나누고 결과를 모으는 방법을 정리합니다. 예제 코드와 함께 살펴봅니다.</p>", 20) +
		`</article></body></html>`

	p := &Parser{}
	page, err := p.Parse("https://blog.example.com/go", markup)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := p.Enrich(page, "https://blog.example.com/go", markup); err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if page.SiteName != "개발 블로그" {
		t.Errorf("SiteName = %q, want %q", page.SiteName, "개발 블로그")
	}
	if page.Title != "Go 동시성 패턴" {
		t.Errorf("Enrich() changed Title to %q", page.Title)
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  a \n\t b  "); got != "a b" {
		t.Errorf("normalizeText() = %q, want %q", got, "a b")
	}
}
