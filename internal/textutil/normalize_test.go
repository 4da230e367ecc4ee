// internal/textutil/normalize_test.go
package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "McDonald's", "mcdonalds"},
		{"strips punctuation and spaces", "  Joe's Pizza & Grill!  ", "joespizzagrill"},
		{"keeps digits", "7-Eleven", "7eleven"},
		{"empty input", "", ""},
		{"only punctuation", "!!!---", ""},
		{"non-latin stripped", "寿司 Sushi Bar", "sushibar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"McDonald's", "", "Café 24/7", "  spaced  out  ", "ALLCAPS"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeStrict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"curly quotes straightened", "McDonald’s", "mcdonald's"},
		{"whitespace collapsed", "  Burger   King \t Express ", "burger king express"},
		{"zero width stripped", "Star\u200bbucks", "starbucks"},
		{"bom stripped", "\ufeffSubway", "subway"},
		{"compatibility fold", "Ｃａｆｅ", "cafe"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStrict(tt.input))
		})
	}
}

func TestNormalizeStrict_Idempotent(t *testing.T) {
	inputs := []string{"McDonald’s", "Ｃａｆｅ　Ｔｏｋｙｏ", "plain text"}
	for _, in := range inputs {
		once := NormalizeStrict(in)
		assert.Equal(t, once, NormalizeStrict(once))
	}
}
