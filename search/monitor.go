package search

import (
	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/query"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterSegmentation(articles []core.Article)
	WholeDocumentFallback()
	ArticleMatched(match *core.Match)
	ArticleRejected(article core.Article, outcome query.Outcome)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                  {}
func (n *noopMonitor) AfterSegmentation(_ []core.Article)              {}
func (n *noopMonitor) WholeDocumentFallback()                          {}
func (n *noopMonitor) ArticleMatched(_ *core.Match)                    {}
func (n *noopMonitor) ArticleRejected(_ core.Article, _ query.Outcome) {}
func (n *noopMonitor) Finish(_ *core.SearchResult)                     {}
