package textprocessor_test

import (
	"reflect"
	"testing"

	"github.com/deidaraiorek/termrank/internal/normalize"
	"github.com/deidaraiorek/termrank/internal/stopwords"
	"github.com/deidaraiorek/termrank/internal/textprocessor"
)

func newProcessor() *textprocessor.TextProcessor {
	return textprocessor.NewTextProcessor(normalize.New(stopwords.English()))
}

func TestProcess(t *testing.T) {
	processor := newProcessor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "review",
			input:    "Absolutely wonderful - silky and sexy and comfortable",
			expected: []string{"absolutely", "wonderful", "silky", "sexy", "comfortable"},
		},
		{
			name:     "negation",
			input:    "The fabric is not soft.",
			expected: []string{"fabric", "notsoft"},
		},
		{
			name:     "only stop words",
			input:    "It is what it is.",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processor.Process(textprocessor.Document{ID: 7, RawText: tt.input})
			if !reflect.DeepEqual(result.Tokens, tt.expected) {
				t.Errorf("Process(%q).Tokens = %v, want %v", tt.input, result.Tokens, tt.expected)
			}
			if result.ID != 7 || result.RawText != tt.input {
				t.Errorf("Process(%q) lost identity: %+v", tt.input, result)
			}
		})
	}
}

func TestProcessReturnsNewDocument(t *testing.T) {
	processor := newProcessor()

	in := textprocessor.Document{ID: 1, RawText: "Love this dress!"}
	out := processor.Process(in)

	if in.NormalizedText != "" || in.Tokens != nil {
		t.Errorf("Process mutated its input: %+v", in)
	}
	if out.NormalizedText != "love dress" {
		t.Errorf("NormalizedText = %q, want %q", out.NormalizedText, "love dress")
	}
}

func TestProcessDocument(t *testing.T) {
	processor := newProcessor()

	result := processor.ProcessDocument(textprocessor.Document{
		ID:      3,
		RawText: "Cute dress. Cute print, cute fit!",
	})

	expected := map[string]int{
		"cute":  3,
		"dress": 1,
		"print": 1,
		"fit":   1,
	}
	if !reflect.DeepEqual(result.TermFrequencies, expected) {
		t.Errorf("TermFrequencies = %v, want %v", result.TermFrequencies, expected)
	}
	if result.TotalTerms != 6 {
		t.Errorf("TotalTerms = %d, want 6", result.TotalTerms)
	}
	if result.UniqueTerms != 4 {
		t.Errorf("UniqueTerms = %d, want 4", result.UniqueTerms)
	}
}

func TestProcessDocumentEmpty(t *testing.T) {
	processor := newProcessor()

	result := processor.ProcessDocument(textprocessor.Document{ID: 0, RawText: ""})

	if result.UniqueTerms != 0 || result.TotalTerms != 0 {
		t.Errorf("empty document produced terms: %+v", result)
	}
}

func BenchmarkProcessDocument(b *testing.B) {
	processor := newProcessor()
	doc := textprocessor.Document{
		RawText: `I had such high hopes for this dress and really wanted it to work for me.
		I initially ordered the petite small (my usual size) but I found this to be outrageously small.
		So small in fact that I could not zip it up!`,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		processor.ProcessDocument(doc)
	}
}
