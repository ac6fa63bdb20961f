// Package http provides the optional HTTP adapter for live search. Host
// applications register the handler on their own mux; the wiki core has no
// server of its own.
package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-wiki/internal/content"
	"github.com/goliatone/go-wiki/internal/logging"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// SearchAPIConfig wires a SearchAPI.
type SearchAPIConfig struct {
	Repository *content.Repository
	// MaxResults caps the response independently of the repository's own
	// search cap; the live-search widget only shows a short list.
	MaxResults int
	Logger     interfaces.Logger
}

// SearchAPI serves the live-search endpoint consumed by the client-side
// search widget. Match semantics, snippet windowing, and highlighting are
// the repository's own, so the widget and full search page always agree.
type SearchAPI struct {
	repo       *content.Repository
	maxResults int
	logger     interfaces.Logger
}

// NewSearchAPI builds the adapter over cfg.Repository.
func NewSearchAPI(cfg SearchAPIConfig) *SearchAPI {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	return &SearchAPI{
		repo:       cfg.Repository,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Register mounts the endpoint on mux as GET /api/search.
func (api *SearchAPI) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /api/search", api.HandleSearch)
}

type searchResult struct {
	interfaces.SearchResult
	URL string `json:"url"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Results []searchResult `json:"results"`
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// HandleSearch answers GET requests with a JSON result list for the q
// parameter. Queries shorter than two characters succeed with an empty
// list rather than failing.
func (api *SearchAPI) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	if len(query) < 2 {
		writeJSON(w, http.StatusOK, searchResponse{
			Success: true,
			Results: []searchResult{},
			Query:   query,
			Message: "Query too short",
		})
		return
	}

	if api.repo == nil {
		writeJSON(w, http.StatusInternalServerError, searchResponse{
			Error:   "Search temporarily unavailable",
			Results: []searchResult{},
			Query:   query,
		})
		return
	}

	hits, err := api.repo.Search(query)
	if err != nil {
		api.logger.Error("search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, searchResponse{
			Error:   "Search temporarily unavailable",
			Results: []searchResult{},
			Query:   query,
		})
		return
	}

	if len(hits) > api.maxResults {
		hits = hits[:api.maxResults]
	}

	results := make([]searchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, searchResult{
			SearchResult: hit,
			URL:          "?page=" + url.QueryEscape(hit.Path),
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Results: results,
		Query:   query,
		Total:   len(results),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, must-revalidate")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
