package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deidaraiorek/termrank/internal/stopwords"
)

// asciiPunct is the POSIX [:punct:] class.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalizer turns raw review text into its canonical form. It holds no
// mutable state and may be shared between goroutines.
type Normalizer struct {
	stopWords stopwords.Set
	tag       language.Tag
}

type Option func(*Normalizer)

// WithLanguage sets the tag used for case folding.
func WithLanguage(tag language.Tag) Option {
	return func(n *Normalizer) {
		n.tag = tag
	}
}

func New(stopWords stopwords.Set, opts ...Option) *Normalizer {
	if stopWords == nil {
		stopWords = stopwords.Set{}
	}
	n := &Normalizer{
		stopWords: stopWords,
		tag:       language.English,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize applies, in order: punctuation stripping, negation fusion,
// two-pass whitespace collapse, case folding and stopword removal.
func (n *Normalizer) Normalize(text string) string {
	text = StripPunctuation(text)
	text = FuseNegation(text)
	text = CollapseSpaces(text)
	// cases.Caser is stateful, so each call gets its own.
	text = cases.Lower(n.tag).String(text)
	return n.RemoveStopWords(text)
}

func IsPunct(r rune) bool {
	if r < utf8.RuneSelf {
		return strings.ContainsRune(asciiPunct, r)
	}
	return unicode.IsPunct(r)
}

// StripPunctuation deletes punctuation without inserting a separator, so
// "fit,great" becomes "fitgreat".
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if IsPunct(r) {
			return -1
		}
		return r
	}, text)
}

// FuseNegation joins a lowercase "not" to the following word. Only the exact
// sequence "not " matches; "Not " and "NOT " are left alone.
func FuseNegation(text string) string {
	return strings.ReplaceAll(text, "not ", "not")
}

// CollapseSpaces replaces double spaces, then triple spaces, with one space.
// Longer runs are only partially collapsed.
func CollapseSpaces(text string) string {
	text = strings.ReplaceAll(text, "  ", " ")
	return strings.ReplaceAll(text, "   ", " ")
}

// RemoveStopWords drops every whitespace-delimited word found in the
// stopword set along with the separator before it. Leading and trailing
// whitespace is dropped; separators between kept words are left untouched.
func (n *Normalizer) RemoveStopWords(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	wrote := false
	i := 0
	for i < len(text) {
		sepStart := i
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		sep := text[sepStart:i]

		wordStart := i
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		word := text[wordStart:i]

		if word == "" || n.stopWords.Contains(word) {
			continue
		}
		if wrote {
			b.WriteString(sep)
		}
		b.WriteString(word)
		wrote = true
	}
	return b.String()
}
