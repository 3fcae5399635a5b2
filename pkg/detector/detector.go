// Package detector identifies the natural language of page text.
package detector

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minTextRunes is the shortest text worth running detection on.
const minTextRunes = 20

// maxTextRunes bounds how much of a page is sampled.
const maxTextRunes = 4000

// Languages the detector chooses between.
var supportedLanguages = []lingua.Language{
	lingua.Korean,
	lingua.English,
	lingua.Japanese,
	lingua.Chinese,
	lingua.German,
	lingua.French,
	lingua.Spanish,
}

// Result is a detected language as a lowercase ISO 639-1 code with lingua's
// confidence in [0, 1].
type Result struct {
	Language   string
	Confidence float64
}

// Detector wraps a lingua language detector. The underlying models are
// loaded on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// New returns a Detector.
func New() *Detector {
	return &Detector{}
}

func (d *Detector) init() {
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(supportedLanguages...).
			Build()
	})
}

// Detect returns the language of text. ok is false when the text is too
// short or lingua cannot decide.
func (d *Detector) Detect(text string) (Result, bool) {
	text = sample(strings.TrimSpace(text))
	if utf8.RuneCountInString(text) < minTextRunes {
		return Result{}, false
	}

	d.init()
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Result{}, false
	}
	return Result{
		Language:   strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(text, lang),
	}, true
}

func sample(text string) string {
	if utf8.RuneCountInString(text) <= maxTextRunes {
		return text
	}
	return string([]rune(text)[:maxTextRunes])
}
