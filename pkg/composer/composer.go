// Package composer builds the final blog post from a title, a keyword list and
// reader comment insight using fixed section templates.
//
// A post always has the same shape:
//
//	# {title}
//	- 주제 키워드: ...
//	- 구성: 서론 → 문제 제기 → 정보 제공 → 정리
//
//	## 서론
//	### ...
//	paragraph
//
//	... three more sections
//
// Keywords are spread over the sections a few at a time so no paragraph
// repeats the whole list.
package composer

import (
	"strings"

	"github.com/dtnitsch/llm-blog-writer/models"
	"github.com/dtnitsch/llm-blog-writer/pkg/keywords"
)

const (
	// DefaultKeywordsPerSection is the keyword budget of a single section.
	DefaultKeywordsPerSection = 2

	outlineKeywordCount = 3
	insightQuoteCount   = 2

	keywordConnective = "와 "
	quoteSeparator    = ", "
)

// Placeholders used when an input is missing.
const (
	PlaceholderOutlineKeywords = "핵심 포인트"
	PlaceholderKeywords        = "핵심 키워드"
	PlaceholderHighlights      = "주목 받은 의견"
	PlaceholderPainPoints      = "해결이 필요한 문제"
	PlaceholderWishes          = "독자가 바라는 방향"
	PlaceholderToneHint        = "독자 의견"
	DefaultTone                = "긍정적"
)

// Options configures a Composer.
type Options struct {
	KeywordsPerSection int
}

// Composer renders posts. It holds no state besides its options.
type Composer struct {
	keywordsPerSection int
}

// New returns a Composer. A non-positive keyword budget falls back to the
// default; budgets above keywords.MaxKeywords are capped since no list is longer.
func New(opts Options) *Composer {
	k := opts.KeywordsPerSection
	switch {
	case k <= 0:
		k = DefaultKeywordsPerSection
	case k > keywords.MaxKeywords:
		k = keywords.MaxKeywords
	}
	return &Composer{keywordsPerSection: k}
}

// Compose returns the full post. It never fails: missing data is replaced by
// placeholder phrases. Every substituted value is flattened to a single line
// so inputs cannot add headings of their own.
func (c *Composer) Compose(title string, kws []string, insight models.CommentInsight) string {
	title = singleLine(title)
	kws = cleanKeywords(kws)

	blocks := outline(title, kws)
	for i, kind := range Sections() {
		assigned := c.KeywordsForSection(kws, i)
		blocks = append(blocks, c.section(kind, title, assigned, insight))
	}
	return strings.Join(blocks, "\n\n")
}

// KeywordsForSection returns the keyword chunk assigned to a section index.
// An empty chunk falls back to the first chunk of the list, so a section only
// gets no keywords when the whole list is empty.
func (c *Composer) KeywordsForSection(kws []string, index int) []string {
	start := index * c.keywordsPerSection
	end := start + c.keywordsPerSection
	if chunk := window(kws, start, end); len(chunk) > 0 {
		return chunk
	}
	return window(kws, 0, c.keywordsPerSection)
}

func outline(title string, kws []string) []string {
	hint := PlaceholderOutlineKeywords
	if len(kws) > 0 {
		hint = strings.Join(window(kws, 0, outlineKeywordCount), ", ")
	}

	labels := make([]string, 0, len(sectionTable))
	for _, kind := range Sections() {
		labels = append(labels, kind.Label())
	}

	return []string{
		"# " + title,
		"- 주제 키워드: " + hint,
		"- 구성: " + strings.Join(labels, " → "),
	}
}

func (c *Composer) section(kind SectionKind, title string, kws []string, insight models.CommentInsight) string {
	tmpl := sectionTable[kind]
	f := fill{
		title:      title,
		keywords:   c.scatter(kws),
		highlights: quote(insight.Highlights, PlaceholderHighlights),
		painPoints: quote(insight.PainPoints, PlaceholderPainPoints),
		wishes:     quote(insight.Wishes, PlaceholderWishes),
		toneHint:   orDefault(singleLine(insight.Tone), PlaceholderToneHint),
		tone:       orDefault(singleLine(insight.Tone), DefaultTone),
	}

	return strings.Join([]string{
		"## " + tmpl.label,
		"### " + tmpl.subheading(f),
		tmpl.paragraph(f),
	}, "\n")
}

// scatter joins at most keywordsPerSection keywords with the connective particle.
func (c *Composer) scatter(kws []string) string {
	if len(kws) == 0 {
		return PlaceholderKeywords
	}
	return strings.Join(window(kws, 0, c.keywordsPerSection), keywordConnective)
}

func quote(items []string, placeholder string) string {
	picked := window(items, 0, insightQuoteCount)
	flat := make([]string, len(picked))
	for i, item := range picked {
		flat[i] = singleLine(item)
	}
	joined := strings.Join(flat, quoteSeparator)
	if joined == "" {
		return placeholder
	}
	return joined
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// singleLine collapses every run of whitespace, newlines included, to one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cleanKeywords(kws []string) []string {
	out := make([]string, 0, len(kws))
	for _, kw := range kws {
		if kw = singleLine(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// window is a bounds-safe s[start:end].
func window(s []string, start, end int) []string {
	if start >= len(s) {
		return nil
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
