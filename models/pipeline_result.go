package models

// PipelineResult is the output of one pipeline run.
type PipelineResult struct {
	Parsed         PageSummary    `json:"parsed" yaml:"parsed"`
	CommentSummary CommentInsight `json:"comment_summary" yaml:"comment_summary"`
	Title          string         `json:"title" yaml:"title"`
	BlogPost       string         `json:"blog_post" yaml:"blog_post"`

	// Keywords used while composing; kept for the archive, not part of the output document.
	Keywords []string `json:"-" yaml:"-"`
}
