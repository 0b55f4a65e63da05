package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/deidaraiorek/termrank/internal/dtm"
	"github.com/deidaraiorek/termrank/internal/pipeline"
	"github.com/deidaraiorek/termrank/internal/rank"
)

type RankRequest struct {
	Documents       []string `json:"documents"`
	SparseThreshold *float64 `json:"sparse_threshold,omitempty"`
	TopK            *int     `json:"top_k,omitempty"`
}

type RankResponse struct {
	Documents       int                  `json:"documents"`
	Terms           int                  `json:"terms"`
	SparseThreshold float64              `json:"sparse_threshold"`
	Ranking         []rank.TermFrequency `json:"ranking"`
}

type Options struct {
	Pipeline     pipeline.Options
	TopK         int
	MaxDocuments int
}

type Handler struct {
	logger *slog.Logger
	opts   Options
	cache  *ResponseCache
}

func NewHandler(logger *slog.Logger, opts Options, cache *ResponseCache) (*Handler, error) {
	// Fail at startup rather than on the first request.
	if _, err := pipeline.New(opts.Pipeline, logger); err != nil {
		return nil, err
	}
	return &Handler{
		logger: logger,
		opts:   opts,
		cache:  cache,
	}, nil
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	resp, cached, err := h.rank(r, req)
	if err != nil {
		h.logger.Warn("rank request rejected", "error", err, "documents", len(req.Documents))
		HandleError(w, err)
		return
	}

	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	JSONResponse(w, http.StatusOK, resp)
}

func (h *Handler) rank(r *http.Request, req RankRequest) (*RankResponse, bool, error) {
	if len(req.Documents) == 0 {
		return nil, false, &HTTPError{Code: http.StatusBadRequest, Message: pipeline.ErrNoDocuments.Error()}
	}
	if h.opts.MaxDocuments > 0 && len(req.Documents) > h.opts.MaxDocuments {
		return nil, false, &HTTPError{
			Code:    http.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("at most %d documents per request", h.opts.MaxDocuments),
		}
	}

	opts := h.opts.Pipeline
	if req.SparseThreshold != nil {
		opts.SparseThreshold = *req.SparseThreshold
	}
	topK := h.opts.TopK
	if req.TopK != nil {
		if *req.TopK < 0 {
			return nil, false, &HTTPError{Code: http.StatusBadRequest, Message: "top_k must not be negative"}
		}
		topK = *req.TopK
	}

	p, err := pipeline.New(opts, h.logger)
	if err != nil {
		if errors.Is(err, dtm.ErrInvalidThreshold) {
			return nil, false, &HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		return nil, false, err
	}

	key := CacheKey(req.Documents, p.SparseThreshold(), topK)
	if resp, ok := h.cache.Get(key); ok {
		return resp, true, nil
	}

	result, err := p.Run(r.Context(), req.Documents)
	if err != nil {
		return nil, false, err
	}

	resp := &RankResponse{
		Documents:       len(result.Documents),
		Terms:           len(result.Ranking),
		SparseThreshold: p.SparseThreshold(),
		Ranking:         result.Top(topK),
	}
	h.cache.Set(key, resp)
	return resp, false, nil
}
