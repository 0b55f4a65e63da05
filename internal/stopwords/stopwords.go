package stopwords

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an immutable-by-convention collection of case-folded stopwords.
type Set map[string]bool

// ForLanguage returns the built-in list for language. Only English ships.
func ForLanguage(language string) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "en", "english":
		return English(), nil
	default:
		return nil, fmt.Errorf("no stopword list for language %q", language)
	}
}

// New builds a set from words, lowercasing and skipping blanks.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		s[word] = true
	}
	return s
}

func (s Set) Contains(word string) bool {
	return s[word]
}

// With returns a copy of s extended by extra and without exclude.
func (s Set) With(extra, exclude []string) Set {
	out := make(Set, len(s)+len(extra))
	for word := range s {
		out[word] = true
	}
	for word := range New(extra...) {
		out[word] = true
	}
	for word := range New(exclude...) {
		delete(out, word)
	}
	return out
}

// Words returns the members in lexicographic order.
func (s Set) Words() []string {
	words := make([]string, 0, len(s))
	for word := range s {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// English returns a fresh copy of the English list. Contractions keep their
// apostrophes, so they only match when punctuation has not been stripped.
func English() Set {
	words := []string{
		// Pronouns
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those",

		// Common verbs
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"would", "should", "could", "ought",

		// Contractions
		"i'm", "you're", "he's", "she's", "it's", "we're", "they're",
		"i've", "you've", "we've", "they've",
		"i'd", "you'd", "he'd", "she'd", "we'd", "they'd",
		"i'll", "you'll", "he'll", "she'll", "we'll", "they'll",
		"isn't", "aren't", "wasn't", "weren't", "hasn't", "haven't", "hadn't",
		"doesn't", "don't", "didn't", "won't", "wouldn't", "shan't", "shouldn't",
		"can't", "cannot", "couldn't", "mustn't",
		"let's", "that's", "who's", "what's", "here's", "there's",
		"when's", "where's", "why's", "how's",

		// Articles and conjunctions
		"a", "an", "the", "and", "but", "if", "or", "because", "as", "until", "while",

		// Prepositions
		"of", "at", "by", "for", "with", "about", "against", "between",
		"into", "through", "during", "before", "after", "above", "below",
		"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",

		// Other common words
		"again", "further", "then", "once", "here", "there",
		"when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
		"no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
	}
	return New(words...)
}
