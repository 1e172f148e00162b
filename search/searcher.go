package search

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/query"
	"github.com/poiesic/madde/segment"
)

// Searcher runs keyword queries against the articles of a document.
type Searcher struct {
	maxResults            int
	wholeDocumentFallback bool
	logger                *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMaxResults sets the limit used when a request does not carry one.
// Default is core.DefaultMaxResults.
func WithMaxResults(n int) Option {
	return func(s *Searcher) error {
		if err := core.ValidateMaxResults(n); err != nil {
			return err
		}
		s.maxResults = n
		return nil
	}
}

// WithWholeDocumentFallback makes the searcher treat a document without
// article markers as a single unnumbered article instead of returning no
// matches.
func WithWholeDocumentFallback(enabled bool) Option {
	return func(s *Searcher) error {
		s.wholeDocumentFallback = enabled
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		maxResults: core.DefaultMaxResults,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("search option: %w", err)
		}
	}

	return s, nil
}

// Request describes one search over one document.
type Request struct {
	DocumentID    string
	Document      string
	Query         string
	CaseSensitive bool
	MaxResults    int // Zero or negative uses the searcher's default
}

// Search evaluates the request and returns the ranked matches.
func (s *Searcher) Search(req *Request) *core.SearchResult {
	return s.SearchWithMonitor(req, nil)
}

// SearchWithMonitor evaluates the request with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(req *Request, monitor SearchMonitor) *core.SearchResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	result := &core.SearchResult{Matches: []*core.Match{}}
	if req == nil {
		return result
	}
	result.DocumentID = req.DocumentID
	result.Query = req.Query

	monitor.Start(req.Query)

	// 1. Segment
	articles := segment.Split(req.Document)
	monitor.AfterSegmentation(articles)

	if len(articles) == 0 {
		if !s.wholeDocumentFallback || req.Document == "" {
			s.logger.Debug("no articles found", "document", req.DocumentID)
			monitor.Finish(result)
			return result
		}
		s.logger.Debug("no article markers, searching whole document", "document", req.DocumentID)
		monitor.WholeDocumentFallback()
		articles = []core.Article{segment.WholeDocument(req.Document)}
	}

	// 2. Evaluate every article
	q := query.Parse(req.Query)
	term, hasTerm := q.PreviewTerm()

	matches := make([]*core.Match, 0, len(articles))
	for _, article := range articles {
		outcome := query.Evaluate(article.Body, q, req.CaseSensitive)
		if !outcome.Matched() {
			monitor.ArticleRejected(article, outcome)
			continue
		}

		preview := fallbackPreview(article.Body)
		if hasTerm {
			preview = Preview(article.Body, term, req.CaseSensitive)
		}

		match := &core.Match{
			Article: article,
			Score:   outcome.Score,
			Preview: preview,
		}
		monitor.ArticleMatched(match)
		matches = append(matches, match)
	}

	// 3. Rank: score descending, document order among equals
	slices.SortStableFunc(matches, func(a, b *core.Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	result.TotalMatches = len(matches)
	limit := s.maxResults
	if req.MaxResults > 0 {
		limit = req.MaxResults
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	result.Matches = matches

	s.logger.Debug("article search finished",
		"document", req.DocumentID,
		"articles", len(articles),
		"matches", result.TotalMatches,
		"returned", len(matches))
	monitor.Finish(result)

	return result
}

// SearchArticles segments document and returns the articles matching q,
// highest score first, at most maxResults of them. A maxResults below 1
// returns no matches, as does a document without article markers.
func SearchArticles(document, q string, caseSensitive bool, maxResults int) []*core.Match {
	if maxResults < 1 {
		return []*core.Match{}
	}
	s := &Searcher{
		maxResults: maxResults,
		logger:     slog.Default(),
	}
	return s.Search(&Request{
		Document:      document,
		Query:         q,
		CaseSensitive: caseSensitive,
	}).Matches
}
