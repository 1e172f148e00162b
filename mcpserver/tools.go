package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/search"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_articles",
		Description: "Search the articles (MADDE) of a legislation document. Supports plain words, " +
			"\"exact phrases\" and the AND, OR, NOT operators, evaluated left to right. " +
			"Returns matching articles sorted by match count.",
	}, s.searchArticles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "segment_document",
		Description: "Split a legislation document into its articles (MADDE) with number, title and content.",
	}, s.segmentDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "get_document_content",
		Description: "Load a legislation document as Markdown, from a file path (.md, .txt, .html) or a " +
			"base64 HTML payload, or return a document loaded earlier by its ID.",
	}, s.getDocumentContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cache_stats",
		Description: "Report whether the document cache is enabled, its size and the default TTL.",
	}, s.cacheStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Remove every entry from the document cache.",
	}, s.clearCache)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sweep_cache",
		Description: "Remove expired entries from the document cache and report how many were removed.",
	}, s.sweepCache)
}

// DocumentRef names the document a tool works on. Exactly one field is set.
type DocumentRef struct {
	Document   string `json:"document,omitempty" jsonschema:"Markdown text of the document"`
	Path       string `json:"path,omitempty" jsonschema:"path of a .md, .markdown, .txt, .html or .htm file"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"ID of a document loaded earlier; also labels inline documents"`
}

// resolve returns the ID and Markdown text of the referenced document.
// An inline document may carry document_id as its label.
func (s *Server) resolve(ctx context.Context, ref DocumentRef) (string, string, error) {
	switch {
	case ref.Document != "" && ref.Path != "":
		return "", "", ErrAmbiguousDocument
	case ref.Document != "":
		id := ref.DocumentID
		if id == "" {
			id = "inline"
		}
		return id, ref.Document, nil
	case ref.Path != "":
		if ref.DocumentID != "" {
			return "", "", ErrAmbiguousDocument
		}
		doc, err := s.engine.LoadFile(ctx, ref.Path)
		if err != nil {
			return "", "", err
		}
		return doc.ID, doc.Content, nil
	case ref.DocumentID != "":
		doc, ok := s.engine.Library().Get(ref.DocumentID)
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrUnknownDocument, ref.DocumentID)
		}
		return doc.ID, doc.Content, nil
	}
	return "", "", ErrNoDocument
}

// --- search_articles ---

type SearchInput struct {
	DocumentRef
	Query         string `json:"query" jsonschema:"search query, e.g. \"mali sıkıntı\" AND yatırımcı NOT kurum"`
	CaseSensitive *bool  `json:"case_sensitive,omitempty" jsonschema:"match case exactly; defaults to the server setting"`
	MaxResults    int    `json:"max_results,omitempty" jsonschema:"maximum number of articles to return; defaults to the server setting"`
	IncludeReport bool   `json:"include_report,omitempty" jsonschema:"also return a plain-text report of the matches"`
}

type ArticleMatch struct {
	Number     string `json:"number"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	MatchCount int    `json:"match_count"`
	Preview    string `json:"preview"`
}

type SearchOutput struct {
	DocumentID       string         `json:"document_id"`
	Query            string         `json:"query"`
	TotalMatches     int            `json:"total_matches"`
	MatchingArticles []ArticleMatch `json:"matching_articles"`
	Report           string         `json:"report,omitempty"`
}

func (s *Server) searchArticles(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if in.MaxResults < 0 {
		return nil, SearchOutput{}, fmt.Errorf("max_results: %w", core.ValidateMaxResults(in.MaxResults))
	}

	id, document, err := s.resolve(ctx, in.DocumentRef)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	caseSensitive := s.engine.Config().CaseSensitive
	if in.CaseSensitive != nil {
		caseSensitive = *in.CaseSensitive
	}

	result := s.engine.Searcher().Search(&search.Request{
		DocumentID:    id,
		Document:      document,
		Query:         in.Query,
		CaseSensitive: caseSensitive,
		MaxResults:    in.MaxResults,
	})
	s.logger.Info("tool search_articles", "document", id, "query", in.Query, "matches", result.TotalMatches)

	out := SearchOutput{
		DocumentID:       result.DocumentID,
		Query:            result.Query,
		TotalMatches:     result.TotalMatches,
		MatchingArticles: make([]ArticleMatch, 0, len(result.Matches)),
	}
	for _, m := range result.Matches {
		out.MatchingArticles = append(out.MatchingArticles, ArticleMatch{
			Number:     m.Number,
			Title:      m.Title,
			Content:    m.Body,
			MatchCount: m.Score,
			Preview:    m.Preview,
		})
	}
	if in.IncludeReport {
		out.Report = search.FormatResults(result)
	}
	return nil, out, nil
}

// --- segment_document ---

type Article struct {
	Number  string `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SegmentOutput struct {
	DocumentID   string    `json:"document_id"`
	ArticleCount int       `json:"article_count"`
	Articles     []Article `json:"articles"`
}

func (s *Server) segmentDocument(ctx context.Context, _ *mcp.CallToolRequest, in DocumentRef) (*mcp.CallToolResult, SegmentOutput, error) {
	id, document, err := s.resolve(ctx, in)
	if err != nil {
		return nil, SegmentOutput{}, err
	}

	articles := s.engine.Segment(document)
	out := SegmentOutput{
		DocumentID:   id,
		ArticleCount: len(articles),
		Articles:     make([]Article, 0, len(articles)),
	}
	for _, a := range articles {
		out.Articles = append(out.Articles, Article{Number: a.Number, Title: a.Title, Content: a.Body})
	}
	s.logger.Info("tool segment_document", "document", id, "articles", len(articles))
	return nil, out, nil
}

// --- get_document_content ---

type ContentInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"ID of the document; required with payload"`
	Path       string `json:"path,omitempty" jsonschema:"path of a .md, .markdown, .txt, .html or .htm file"`
	Payload    string `json:"payload,omitempty" jsonschema:"base64-encoded HTML of the document"`
}

type ContentOutput struct {
	DocumentID      string `json:"document_id"`
	Title           string `json:"title,omitempty"`
	Source          string `json:"source,omitempty"`
	MarkdownContent string `json:"markdown_content"`
}

func (s *Server) getDocumentContent(ctx context.Context, _ *mcp.CallToolRequest, in ContentInput) (*mcp.CallToolResult, ContentOutput, error) {
	var (
		doc *core.Document
		err error
	)

	switch {
	case in.Payload != "" && in.Path != "":
		return nil, ContentOutput{}, fmt.Errorf("only one of path or payload may be given")
	case in.Payload != "":
		doc, err = s.engine.LoadBase64(ctx, in.DocumentID, in.Payload)
	case in.Path != "":
		doc, err = s.engine.LoadFile(ctx, in.Path)
	case in.DocumentID != "":
		var ok bool
		if doc, ok = s.engine.Library().Get(in.DocumentID); !ok {
			err = fmt.Errorf("%w: %s", ErrUnknownDocument, in.DocumentID)
		}
	default:
		err = fmt.Errorf("one of document_id, path or payload is required")
	}
	if err != nil {
		s.logger.Warn("tool get_document_content failed", "document", in.DocumentID, "path", in.Path, "err", err)
		return nil, ContentOutput{}, err
	}

	s.logger.Info("tool get_document_content", "document", doc.ID, "bytes", len(doc.Content))
	return nil, ContentOutput{
		DocumentID:      doc.ID,
		Title:           doc.Title,
		Source:          doc.Source,
		MarkdownContent: doc.Content,
	}, nil
}

// --- cache tools ---

type CacheStatsOutput struct {
	CacheEnabled      bool  `json:"cache_enabled"`
	CacheSize         int   `json:"cache_size"`
	DefaultTTLSeconds int64 `json:"default_ttl_seconds"`
}

func (s *Server) cacheStats(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, CacheStatsOutput, error) {
	stats, err := s.engine.CacheStats(ctx)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}
	return nil, CacheStatsOutput{
		CacheEnabled:      stats.Enabled,
		CacheSize:         stats.Size,
		DefaultTTLSeconds: int64(stats.DefaultTTL.Seconds()),
	}, nil
}

type ClearCacheOutput struct {
	Cleared bool `json:"cleared"`
}

func (s *Server) clearCache(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ClearCacheOutput, error) {
	if err := s.engine.ClearCache(ctx); err != nil {
		return nil, ClearCacheOutput{}, err
	}
	return nil, ClearCacheOutput{Cleared: s.engine.Config().CacheEnabled}, nil
}

type SweepCacheOutput struct {
	Removed int `json:"removed"`
}

func (s *Server) sweepCache(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, SweepCacheOutput, error) {
	removed, err := s.engine.SweepCache(ctx)
	if err != nil {
		return nil, SweepCacheOutput{}, err
	}
	return nil, SweepCacheOutput{Removed: removed}, nil
}
