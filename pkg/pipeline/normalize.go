package pipeline

import (
	"fmt"

	"github.com/dtnitsch/llm-blog-writer/models"
)

// Insight field names accepted in a generic mapping.
const (
	fieldHighlights = "highlights"
	fieldPainPoints = "pain_points"
	fieldWishes     = "wishes"
	fieldTone       = "tone"
)

// NormalizeInsight converts what a CommentAnalyzer returned into a
// CommentInsight. Accepted shapes are a CommentInsight (value or non-nil
// pointer) and a mapping keyed by field name; missing keys default to empty.
// Every other shape fails with models.ErrTypeMismatch rather than being
// coerced into an empty insight.
func NormalizeInsight(v any) (models.CommentInsight, error) {
	switch in := v.(type) {
	case models.CommentInsight:
		return in.Clone(), nil
	case *models.CommentInsight:
		if in == nil {
			return models.CommentInsight{}, fmt.Errorf("%w: nil *CommentInsight", models.ErrTypeMismatch)
		}
		return in.Clone(), nil
	case map[string][]string:
		return models.CommentInsight{
			Highlights: cloneOrEmpty(in[fieldHighlights]),
			PainPoints: cloneOrEmpty(in[fieldPainPoints]),
			Wishes:     cloneOrEmpty(in[fieldWishes]),
		}, nil
	case map[string]any:
		return insightFromMap(in)
	default:
		return models.CommentInsight{}, fmt.Errorf("%w: comment analyzer returned %T, want CommentInsight or map", models.ErrTypeMismatch, v)
	}
}

func insightFromMap(m map[string]any) (models.CommentInsight, error) {
	var (
		out models.CommentInsight
		err error
	)
	if out.Highlights, err = stringsField(m, fieldHighlights); err != nil {
		return models.CommentInsight{}, err
	}
	if out.PainPoints, err = stringsField(m, fieldPainPoints); err != nil {
		return models.CommentInsight{}, err
	}
	if out.Wishes, err = stringsField(m, fieldWishes); err != nil {
		return models.CommentInsight{}, err
	}

	switch tone := m[fieldTone].(type) {
	case nil:
	case string:
		out.Tone = tone
	case *string:
		if tone != nil {
			out.Tone = *tone
		}
	default:
		return models.CommentInsight{}, fmt.Errorf("%w: field %q is %T, want string", models.ErrTypeMismatch, fieldTone, tone)
	}
	return out, nil
}

// stringsField reads a sequence of strings. JSON-decoded maps hold []any, so
// both forms are accepted as long as every element is a string.
func stringsField(m map[string]any, key string) ([]string, error) {
	switch v := m[key].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return cloneOrEmpty(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T, want string", models.ErrTypeMismatch, key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: field %q is %T, want a list of strings", models.ErrTypeMismatch, key, v)
	}
}

func cloneOrEmpty(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
