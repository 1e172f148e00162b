package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poiesic/madde"
)

const (
	serverName    = "madde"
	serverVersion = "0.1.0"

	instructions = "Searches Turkish legislation article by article. Load a document with " +
		"get_document_content (file path or base64 HTML), then query it with search_articles " +
		"using words, \"quoted phrases\" and the AND, OR, NOT operators."
)

// Server registers the madde tools on an MCP server.
type Server struct {
	engine *madde.Engine
	server *mcp.Server
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a server with every tool registered.
func New(engine *madde.Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Server{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: serverVersion},
		&mcp.ServerOptions{Instructions: instructions, Logger: s.logger},
	)
	s.registerTools()
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves on transport until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("starting MCP server", "name", serverName, "version", serverVersion)
	return s.server.Run(ctx, transport)
}
