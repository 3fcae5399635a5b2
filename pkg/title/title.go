// Package title derives a blog post title from the page title, or builds one
// from the page content when the page has none.
package title

import (
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/llm-blog-writer/pkg/analytics"
)

// Untitled is returned when neither a title nor any content is available.
const Untitled = "제목 없는 글"

const (
	minLineRunes  = 4
	maxTitleRunes = 60
	topTermCount  = 3
)

// siteSeparators split "Headline | Site Name" style titles.
var siteSeparators = []string{" | ", " - ", " :: ", " — ", " · "}

// Request carries everything a title can be derived from. BodyText is only
// set when BaseTitle is empty and a title has to be synthesized.
type Request struct {
	BaseTitle       string
	MetaDescription string
	Highlights      []string
	PainPoints      []string
	Wishes          []string
	BodyText        string
}

// Deriver is a rule-based title deriver.
type Deriver struct {
	analytics *analytics.Analytics
}

// New returns a Deriver.
func New() *Deriver {
	return &Deriver{analytics: &analytics.Analytics{}}
}

// Derive returns a non-empty title.
func (d *Deriver) Derive(req Request) string {
	base := strings.TrimSpace(req.BaseTitle)
	if base != "" {
		base = stripSiteSuffix(base)
	} else {
		base = d.synthesize(req.MetaDescription, req.BodyText)
	}
	return withInsightHook(base, req.PainPoints, req.Wishes)
}

// synthesize builds a title from content: the first sentence of the meta
// description, else the first reasonably sized body line, else the most
// frequent body terms.
func (d *Deriver) synthesize(meta, body string) string {
	if s := firstSentence(meta); s != "" {
		return truncate(s, maxTitleRunes)
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n >= minLineRunes && n <= maxTitleRunes {
			return line
		}
	}

	if terms := d.analytics.TopNWords(body, topTermCount); len(terms) > 0 {
		return strings.Join(terms, " ")
	}
	return Untitled
}

func withInsightHook(base string, painPoints, wishes []string) string {
	if p := firstNonBlank(painPoints); p != "" {
		return base + " - " + p + " 해결 가이드"
	}
	if w := firstNonBlank(wishes); w != "" {
		return base + " - " + w + "까지 정리"
	}
	return base
}

// stripSiteSuffix drops a trailing " | Site" part when a usable headline remains.
func stripSiteSuffix(t string) string {
	for _, sep := range siteSeparators {
		idx := strings.LastIndex(t, sep)
		if idx <= 0 {
			continue
		}
		head := strings.TrimSpace(t[:idx])
		if utf8.RuneCountInString(head) >= 2 {
			return head
		}
	}
	return t
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if idx := strings.IndexAny(text, ".!?\n"); idx > 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(strings.Trim(text, ".!? "))
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

func firstNonBlank(items []string) string {
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			return item
		}
	}
	return ""
}
