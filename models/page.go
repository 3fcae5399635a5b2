// Package models defines data structures shared by the blog pipeline.
package models

// PageContent represents the cleaned content of a single web page.
// An empty string means the field was not present on the page.
type PageContent struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	BodyText        string `json:"body_text"` // visible text, one line per text node

	// Enrichment; best effort
	SourceURL          string  `json:"source_url,omitempty"`
	SiteName           string  `json:"site_name,omitempty"`
	Byline             string  `json:"byline,omitempty"`
	Language           string  `json:"language,omitempty"` // ISO-639-1 if possible (e.g. "ko")
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// PageSummary is the flattened view of a PageContent placed in a PipelineResult.
type PageSummary struct {
	Title           string `json:"title" yaml:"title"`
	MetaDescription string `json:"meta_description" yaml:"meta_description"`
	BodyText        string `json:"body_text" yaml:"body_text"`

	SourceURL          string  `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	SiteName           string  `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Byline             string  `json:"byline,omitempty" yaml:"byline,omitempty"`
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}

// Summary flattens the page for output.
func (p *PageContent) Summary() PageSummary {
	return PageSummary{
		Title:              p.Title,
		MetaDescription:    p.MetaDescription,
		BodyText:           p.BodyText,
		SourceURL:          p.SourceURL,
		SiteName:           p.SiteName,
		Byline:             p.Byline,
		Language:           p.Language,
		LanguageConfidence: p.LanguageConfidence,
	}
}
