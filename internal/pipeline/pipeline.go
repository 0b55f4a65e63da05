package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/deidaraiorek/termrank/internal/dtm"
	"github.com/deidaraiorek/termrank/internal/normalize"
	"github.com/deidaraiorek/termrank/internal/rank"
	"github.com/deidaraiorek/termrank/internal/stopwords"
	"github.com/deidaraiorek/termrank/internal/textprocessor"
	"github.com/deidaraiorek/termrank/internal/worker"
)

var (
	// ErrInput marks problems with the corpus itself. Nothing is computed
	// when it is returned.
	ErrInput       = errors.New("invalid input")
	ErrNoDocuments = fmt.Errorf("%w: no documents", ErrInput)
)

const DefaultSparseThreshold = 0.99

type Options struct {
	Language string
	// StopWords replaces the built-in list for Language when non-nil.
	StopWords       stopwords.Set
	SparseThreshold float64
	Workers         int
}

// Pipeline turns raw documents into a term ranking. It is safe to call Run
// from several goroutines.
type Pipeline struct {
	processor *textprocessor.TextProcessor
	sparse    float64
	workers   int
	logger    *slog.Logger
}

func New(opts Options, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sparse := opts.SparseThreshold
	if sparse == 0 {
		sparse = DefaultSparseThreshold
	}
	if !(sparse > 0 && sparse < 1) {
		return nil, fmt.Errorf("sparse threshold %v: %w", sparse, dtm.ErrInvalidThreshold)
	}

	tag, err := languageTag(opts.Language)
	if err != nil {
		return nil, err
	}

	stopWords := opts.StopWords
	if stopWords == nil {
		stopWords, err = stopwords.ForLanguage(opts.Language)
		if err != nil {
			return nil, err
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pipeline{
		processor: textprocessor.NewTextProcessor(normalize.New(stopWords, normalize.WithLanguage(tag))),
		sparse:    sparse,
		workers:   workers,
		logger:    logger,
	}, nil
}

func languageTag(name string) (language.Tag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "en", "english":
		return language.English, nil
	default:
		return language.Und, fmt.Errorf("unsupported language %q", name)
	}
}

func (p *Pipeline) SparseThreshold() float64 {
	return p.sparse
}

type Result struct {
	Documents []textprocessor.Document
	Matrix    *dtm.Matrix
	Pruned    *dtm.Matrix
	Ranking   []rank.TermFrequency
}

// Empty reports whether no term survived normalization and pruning.
func (r *Result) Empty() bool {
	return len(r.Ranking) == 0
}

func (r *Result) Top(k int) []rank.TermFrequency {
	return rank.TopK(r.Ranking, k)
}

// Run processes texts in order; texts[i] becomes document i.
func (p *Pipeline) Run(ctx context.Context, texts []string) (*Result, error) {
	if len(texts) == 0 {
		return nil, ErrNoDocuments
	}
	start := time.Now()

	docs := make([]textprocessor.Document, len(texts))
	builder := dtm.NewBuilder(len(texts))

	pool := worker.New(p.workers, p.workers*4)
	pool.Start(ctx)
	for i, text := range texts {
		i, text := i, text
		err := pool.Submit(func(ctx context.Context) error {
			processed := p.processor.ProcessDocument(textprocessor.Document{ID: i, RawText: text})
			docs[i] = processed.Document
			builder.Set(i, processed.TermFrequencies)
			return nil
		})
		if err != nil {
			_ = pool.Wait()
			return nil, fmt.Errorf("submit document %d: %w", i, err)
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("process documents: %w", err)
	}
	p.logger.Debug("documents processed", "documents", len(docs), "elapsed", time.Since(start))

	matrix := builder.Matrix()
	p.logger.Debug("document-term matrix built", "documents", matrix.NumDocs(), "terms", matrix.NumTerms())

	pruned, err := matrix.Prune(p.sparse)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("sparse terms removed",
		"threshold", p.sparse,
		"kept", pruned.NumTerms(),
		"removed", matrix.NumTerms()-pruned.NumTerms())

	result := &Result{
		Documents: docs,
		Matrix:    matrix,
		Pruned:    pruned,
		Ranking:   rank.RankWorkers(pruned, p.workers),
	}

	switch {
	case matrix.NumTerms() == 0:
		p.logger.Warn("corpus is empty after normalization", "documents", len(docs))
	case pruned.NumTerms() == 0:
		p.logger.Warn("sparse threshold removed every term", "threshold", p.sparse, "terms", matrix.NumTerms())
	}

	p.logger.Info("ranking complete",
		"documents", len(docs),
		"terms", len(result.Ranking),
		"total_count", rank.GrandTotal(result.Ranking),
		"elapsed", time.Since(start))

	return result, nil
}
