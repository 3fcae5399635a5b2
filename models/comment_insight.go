package models

// CommentInsight aggregates what readers said about a page.
// The three sequences are never nil; an empty Tone means no tone was detected.
type CommentInsight struct {
	Highlights []string `json:"highlights" yaml:"highlights"`
	PainPoints []string `json:"pain_points" yaml:"pain_points"`
	Wishes     []string `json:"wishes" yaml:"wishes"`
	Tone       string   `json:"tone,omitempty" yaml:"tone,omitempty"`
}

// EmptyCommentInsight returns an insight with empty sequences and no tone.
func EmptyCommentInsight() CommentInsight {
	return CommentInsight{
		Highlights: []string{},
		PainPoints: []string{},
		Wishes:     []string{},
	}
}

// IsEmpty reports whether the insight carries no reader signal at all.
func (c CommentInsight) IsEmpty() bool {
	return len(c.Highlights) == 0 && len(c.PainPoints) == 0 && len(c.Wishes) == 0 && c.Tone == ""
}

// Clone returns a deep copy with nil sequences replaced by empty ones.
func (c CommentInsight) Clone() CommentInsight {
	return CommentInsight{
		Highlights: cloneStrings(c.Highlights),
		PainPoints: cloneStrings(c.PainPoints),
		Wishes:     cloneStrings(c.Wishes),
		Tone:       c.Tone,
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
