package detector

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "korean",
			text: "채널과 고루틴으로 작업을 나누고 결과를 모으는 방법을 정리합니다.",
			want: "ko",
		},
		{
			name: "english",
			text: "This guide explains how to split work across goroutines and collect the results with channels.",
			want: "en",
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if !ok {
				t.Fatalf("Detect() ok = false, want %q", tt.want)
			}
			if got.Language != tt.want {
				t.Errorf("Language = %q, want %q", got.Language, tt.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("Confidence = %v, want in (0, 1]", got.Confidence)
			}
		})
	}
}

func TestDetect_TooShort(t *testing.T) {
	d := New()
	for _, text := range []string{"", "   ", "hi there"} {
		if _, ok := d.Detect(text); ok {
			t.Errorf("Detect(%q) ok = true, want false", text)
		}
	}
}

func TestSample(t *testing.T) {
	long := strings.Repeat("가", maxTextRunes+50)
	if got := sample(long); len([]rune(got)) != maxTextRunes {
		t.Errorf("sample() kept %d runes, want %d", len([]rune(got)), maxTextRunes)
	}
}
