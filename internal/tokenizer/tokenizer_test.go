package tokenizer_test

import (
	"reflect"
	"testing"

	"github.com/deidaraiorek/termrank/internal/tokenizer"
)

func TestTokenize(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "basic text",
			input:    "dress notgreat fit",
			expected: []string{"dress", "notgreat", "fit"},
		},
		{
			name:     "adjacent separators",
			input:    "soft  fabric   runs",
			expected: []string{"soft", "fabric", "runs"},
		},
		{
			name:     "tabs and newlines",
			input:    "soft\tfabric\nruns",
			expected: []string{"soft", "fabric", "runs"},
		},
		{
			name:     "surrounding whitespace",
			input:    "  love dress ",
			expected: []string{"love", "dress"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tok.Tokenize(tt.input)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTokenizeRestartable(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	first := tok.Tokenize("love dress fit")
	first[0] = "mutated"
	second := tok.Tokenize("love dress fit")

	if second[0] != "love" {
		t.Errorf("second Tokenize call saw state from the first: %v", second)
	}
}

func TestTokenizeToFrequency(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	input := "dress fit dress love dress"
	result := tok.TokenizeToFrequency(input)

	expected := map[string]int{
		"dress": 3,
		"fit":   1,
		"love":  1,
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("TokenizeToFrequency() = %v, want %v", result, expected)
	}
}

func TestTokenizeToFrequencyEmpty(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	result := tok.TokenizeToFrequency("")
	if len(result) != 0 {
		t.Errorf("TokenizeToFrequency(\"\") = %v, want empty", result)
	}
}

func BenchmarkTokenize(b *testing.B) {
	tok := tokenizer.NewTokenizer()
	text := `absolutely wonderful silky sexy comfortable high hopes dress really wanted work
	notgreat notterrible okay love fabric runs small order size`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(text)
	}
}

func BenchmarkTokenizeToFrequency(b *testing.B) {
	tok := tokenizer.NewTokenizer()
	text := `absolutely wonderful silky sexy comfortable high hopes dress really wanted work
	notgreat notterrible okay love fabric runs small order size dress dress`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.TokenizeToFrequency(text)
	}
}
