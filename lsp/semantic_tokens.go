package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	sapf "github.com/vasilymilovidov/sapf-lsp"
)

// semanticToken is an absolutely positioned token prior to delta encoding.
type semanticToken struct {
	line   uint32
	start  uint32
	length uint32
	kind   sapf.TokenKind
}

// SemanticTokensFull handles textDocument/semanticTokens/full requests.
// Every line of the document is scanned against the flattened keyword set;
// the spans are then delta-encoded into the protocol's flat uint32 stream.
// An unknown document yields an empty token stream.
func (s *Server) SemanticTokensFull(_ context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	s.logger.Debug("SemanticTokensFull", zap.String("uri", string(params.TextDocument.URI)))

	text, ok := s.docs.Text(params.TextDocument.URI)
	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	keywords := s.dict.AllKeywords()

	var tokens []semanticToken

	for i, line := range strings.Split(text, "\n") {
		for _, tok := range sapf.ScanLine(line, keywords) {
			tokens = append(tokens, semanticToken{
				line:   uint32(i), //nolint:gosec // G115: line numbers are small
				start:  tok.Start,
				length: tok.Length,
				kind:   tok.Kind,
			})
		}
	}

	return &protocol.SemanticTokens{Data: encodeTokens(tokens)}, nil
}

// encodeTokens delta-encodes tokens into the wire layout
// [deltaLine, deltaStart, length, tokenType, tokenModifiers, ...].
//
// The line delta is computed against the previous emitted token's line, not
// the previous source line; on a line change the start column is absolute,
// otherwise it is relative to the previous token's start. This exact rule is
// a compatibility contract with the consuming editor.
func encodeTokens(tokens []semanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.line - prevLine

		deltaStart := tok.start
		if deltaLine == 0 {
			deltaStart = tok.start - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.length, uint32(tok.kind), 0)

		prevLine = tok.line
		prevStart = tok.start
	}

	return data
}
