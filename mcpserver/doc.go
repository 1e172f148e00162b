// Package mcpserver exposes a madde.Engine as Model Context Protocol tools.
//
// Tools:
//   - search_articles: keyword search inside one document
//   - segment_document: split a document into its articles
//   - get_document_content: load a document (file or base64 HTML) as Markdown
//   - cache_stats, clear_cache, sweep_cache: document cache maintenance
//
// Documents can be passed inline, by file path, or by the ID of a document
// loaded earlier in the session. Failures are reported as tool results with
// IsError set, never as protocol errors.
package mcpserver
