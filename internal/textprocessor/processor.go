package textprocessor

import (
	"github.com/deidaraiorek/termrank/internal/normalize"
	"github.com/deidaraiorek/termrank/internal/tokenizer"
)

// Document is one input row. NormalizedText and Tokens are derived by
// Process, which always returns a new value.
type Document struct {
	ID             int
	RawText        string
	NormalizedText string
	Tokens         []string
}

type TextProcessor struct {
	normalizer *normalize.Normalizer
	tokenizer  *tokenizer.Tokenizer
}

func NewTextProcessor(normalizer *normalize.Normalizer) *TextProcessor {
	return &TextProcessor{
		normalizer: normalizer,
		tokenizer:  tokenizer.NewTokenizer(),
	}
}

func (tp *TextProcessor) Normalize(doc Document) Document {
	return Document{
		ID:             doc.ID,
		RawText:        doc.RawText,
		NormalizedText: tp.normalizer.Normalize(doc.RawText),
	}
}

func (tp *TextProcessor) Tokenize(doc Document) Document {
	return Document{
		ID:             doc.ID,
		RawText:        doc.RawText,
		NormalizedText: doc.NormalizedText,
		Tokens:         tp.tokenizer.Tokenize(doc.NormalizedText),
	}
}

func (tp *TextProcessor) Process(doc Document) Document {
	return tp.Tokenize(tp.Normalize(doc))
}

type ProcessedDocument struct {
	Document        Document
	TermFrequencies map[string]int
	TotalTerms      int
	UniqueTerms     int
}

func (tp *TextProcessor) ProcessDocument(doc Document) ProcessedDocument {
	processed := tp.Process(doc)
	termFreq := tokenizer.Frequency(processed.Tokens)

	return ProcessedDocument{
		Document:        processed,
		TermFrequencies: termFreq,
		TotalTerms:      len(processed.Tokens),
		UniqueTerms:     len(termFreq),
	}
}
