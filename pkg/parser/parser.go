package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/llm-blog-writer/models"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// droppedTags never contribute body text.
const droppedTags = "script,style,noscript,template"

type Parser struct{}

// Parse extracts the title, meta description and visible body text from an
// HTML document. rawURL is recorded as the source and may be empty.
func (p *Parser) Parse(rawURL, markup string) (*models.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse HTML: %w", models.ErrFetchFailure, err)
	}

	doc.Find(droppedTags).Remove()

	page := &models.PageContent{
		Title:           normalizeText(doc.Find("title").First().Text()),
		MetaDescription: metaDescription(doc),
		BodyText:        bodyText(doc.Find("body")),
		SourceURL:       rawURL,
	}
	return page, nil
}

// Enrich fills SiteName and Byline from go-readability. The page is left
// untouched when readability cannot make sense of the document.
func (p *Parser) Enrich(page *models.PageContent, rawURL, markup string) error {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		pageURL = &url.URL{}
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(markup), pageURL)
	if err != nil {
		return fmt.Errorf("readability failed: %w", err)
	}

	page.SiteName = normalizeText(article.SiteName)
	page.Byline = normalizeText(article.Byline)
	return nil
}

// metaDescription returns the content of the first meta tag named
// "description", matched case-insensitively.
func metaDescription(doc *goquery.Document) string {
	var desc string
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ := s.Attr("content")
		desc = strings.TrimSpace(content)
		return false
	})
	return desc
}

// bodyText joins every non-empty text node under body, one per line.
func bodyText(body *goquery.Selection) string {
	var lines []string
	collectText(body, &lines)
	return strings.Join(lines, "\n")
}

func collectText(s *goquery.Selection, lines *[]string) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case html.TextNode:
			if text := strings.TrimSpace(node.Data); text != "" {
				*lines = append(*lines, text)
			}
		case html.ElementNode:
			collectText(child, lines)
		}
	})
}

// normalizeText collapses runs of whitespace into single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
