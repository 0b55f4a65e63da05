package tokenizer

import (
	"strings"
)

// Tokenizer splits normalized text on whitespace. Normalization and stopword
// handling happen upstream, so no term is filtered here.
type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the terms of text in order. Empty input yields an empty,
// non-nil slice.
func (t *Tokenizer) Tokenize(text string) []string {
	words := strings.Fields(text)
	if words == nil {
		return []string{}
	}
	return words
}

// TokenizeToFrequency returns the per-document term histogram.
func (t *Tokenizer) TokenizeToFrequency(text string) map[string]int {
	return Frequency(t.Tokenize(text))
}

func Frequency(tokens []string) map[string]int {
	result := make(map[string]int, len(tokens))

	for _, token := range tokens {
		result[token]++
	}
	return result
}
