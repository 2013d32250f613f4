// Package lsp implements a Language Server Protocol server for the sapf
// audio language. The server answers hover, completion and semantic-token
// requests against a static word dictionary; it performs no parsing and
// reports no diagnostics.
package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	sapf "github.com/vasilymilovidov/sapf-lsp"
)

const (
	serverName    = "sapf-lsp"
	serverVersion = "0.1.0"
)

// Server implements the LSP Server interface for sapf.
type Server struct {
	client protocol.Client
	logger *zap.Logger

	// Document state
	docs *DocumentStore

	// Read-only after construction, shared by all handlers.
	dict *sapf.Dictionary

	// Server state
	initialized bool
	shutdown    bool
}

// semanticTokensOptions declares the semantic-tokens capability. protocol
// v0.12.0 types ServerCapabilities.SemanticTokensProvider as interface{},
// so the legend is carried by a local struct with the wire field names.
type semanticTokensOptions struct {
	Legend protocol.SemanticTokensLegend `json:"legend"`
	Full   bool                          `json:"full,omitempty"`
}

// NewServer creates a new LSP server answering from the given dictionary.
func NewServer(client protocol.Client, logger *zap.Logger, dict *sapf.Dictionary) *Server {
	return &Server{
		client: client,
		logger: logger,
		docs:   NewDocumentStore(),
		dict:   dict,
	}
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize", zap.Any("clientInfo", params.ClientInfo))

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			// Hover support
			HoverProvider: true,
			// Completion support, re-triggered on "."
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"."},
				ResolveProvider:   false,
			},
			// Full-document semantic tokens. The legend order is a wire
			// contract: token type indices in the encoded data point into it.
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes: []protocol.SemanticTokenTypes{
						protocol.SemanticTokenFunction,
						protocol.SemanticTokenOperator,
						protocol.SemanticTokenNumber,
					},
					TokenModifiers: []protocol.SemanticTokenModifiers{},
				},
				Full: true,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: serverVersion,
		},
	}, nil
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(ctx context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized", zap.Int("categories", s.dict.Len()))
	s.initialized = true

	err := s.client.LogMessage(ctx, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: "sapf-lsp initialized",
	})
	if err != nil {
		s.logger.Warn("Failed to send log message to client", zap.Error(err))
	}

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")
	s.shutdown = true

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")
	// The main loop should handle exiting after this
	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(_ context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	s.docs.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)

	return nil
}

// DidChange handles textDocument/didChange notifications.
// The sync kind is full, so each change event carries the whole document;
// only the last event of a batch is applied.
func (s *Server) DidChange(_ context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Info("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	if len(params.ContentChanges) == 0 {
		return nil
	}

	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.Apply(params.TextDocument.URI, params.TextDocument.Version, text)

	return nil
}

// DidClose handles textDocument/didClose notifications. The stored text is
// retained; requests against a closed document keep answering from its last
// known content.
func (s *Server) DidClose(_ context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	return nil
}

// DidSave handles textDocument/didSave notifications.
func (s *Server) DidSave(_ context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))

	return nil
}
