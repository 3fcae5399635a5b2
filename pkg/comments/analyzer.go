// Package comments turns raw reader comments into highlights, pain points,
// wishes and an overall tone using cue phrase matching.
package comments

import (
	"context"
	"strings"

	"github.com/dtnitsch/llm-blog-writer/models"
)

// Tone labels.
const (
	TonePositive = "긍정적"
	ToneNegative = "부정적"
	ToneNeutral  = "중립적"
)

type category int

const (
	categoryHighlight category = iota
	categoryPainPoint
	categoryWish
	categoryNone
)

// Cue phrases are matched against the lowercased comment. Wishes are checked
// first since requests often mention a problem too ("please make it shorter").
var (
	wishCues = []string{
		"want", "wish", "please", "would love", "would like", "hope", "could you", "should add", "need more",
		"원해", "원합니다", "했으면", "하면 좋겠", "바랍니다", "바래요", "부탁", "추가해", "다뤄 주",
	}
	painCues = []string{
		"too ", "hard", "difficult", "confusing", "confused", "boring", "slow", "broken", "doesn't work",
		"not work", "bad", "problem", "issue", "annoying", "unclear", "missing",
		"어렵", "불편", "길어", "지루", "복잡", "헷갈", "문제", "안 돼", "안돼", "부족", "아쉽",
	}
	highlightCues = []string{
		"great", "helpful", "love", "useful", "awesome", "excellent", "clear", "thanks", "thank you", "nice", "good",
		"좋", "유용", "최고", "감사", "도움", "알기 쉽", "명쾌",
	}
)

// Analyzer is a stateless cue-phrase comment analyzer.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Summarize classifies each comment and returns a models.CommentInsight.
// Comments that match no cue are listed as highlights but do not count
// towards the tone. Case-insensitive duplicates are kept once.
func (a *Analyzer) Summarize(_ context.Context, comments []string) (any, error) {
	insight := models.EmptyCommentInsight()
	seen := make(map[string]struct{}, len(comments))
	positive := 0

	for _, raw := range comments {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		switch classify(key) {
		case categoryWish:
			insight.Wishes = append(insight.Wishes, text)
		case categoryPainPoint:
			insight.PainPoints = append(insight.PainPoints, text)
		case categoryHighlight:
			positive++
			insight.Highlights = append(insight.Highlights, text)
		default:
			insight.Highlights = append(insight.Highlights, text)
		}
	}

	if len(seen) > 0 {
		insight.Tone = tone(positive, len(insight.PainPoints))
	}
	return insight, nil
}

func classify(lower string) category {
	switch {
	case containsAny(lower, wishCues):
		return categoryWish
	case containsAny(lower, painCues):
		return categoryPainPoint
	case containsAny(lower, highlightCues):
		return categoryHighlight
	default:
		return categoryNone
	}
}

func tone(positive, painPoints int) string {
	switch {
	case positive > painPoints:
		return TonePositive
	case painPoints > positive:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
