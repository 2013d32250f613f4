package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	sapf "github.com/vasilymilovidov/sapf-lsp"
)

// Hover handles textDocument/hover requests.
//
// The word under the cursor is extracted with the coarse whitespace
// tokenizer, then resolved against category names first and the flattened
// keyword mapping second. A word like "math.add" matches neither as a whole,
// so as a fallback the dot-separated segment under the cursor is resolved the
// same way: hovering the "math" part shows the category description, the
// "add" part shows the keyword documentation.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	text, ok := s.docs.Text(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	column := int(params.Position.Character)

	word, start, ok := sapf.WordSpanAt(text, int(params.Position.Line), column)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	if contents, ok := s.describe(word); ok {
		return hoverResult(contents), nil
	}

	if strings.Contains(word, ".") {
		if contents, ok := s.describe(segmentAt(word, column-start)); ok {
			return hoverResult(contents), nil
		}
	}

	return nil, nil //nolint:nilnil
}

// describe resolves a name against the dictionary: category names first,
// then the flattened keyword mapping.
func (s *Server) describe(name string) (string, bool) {
	if cat, ok := s.dict.Category(name); ok {
		return cat.Description, true
	}

	if doc, ok := s.dict.Keyword(name); ok {
		return doc, true
	}

	return "", false
}

// segmentAt returns the dot-separated segment of word whose rune span
// contains offset, inclusive on both ends like WordSpanAt.
func segmentAt(word string, offset int) string {
	pos := 0

	for _, seg := range strings.Split(word, ".") {
		end := pos + len([]rune(seg))

		if offset >= pos && offset <= end {
			return seg
		}

		pos = end + 1
	}

	return ""
}

func hoverResult(contents string) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.PlainText,
			Value: contents,
		},
	}
}
