package lsp

import (
	"context"
	"sort"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Completion handles textDocument/completion requests.
//
// The prefix is the text of the cursor's line up to the cursor column. Two
// sources contribute, concatenated:
//
//  1. categories whose name starts with the prefix; accepting one inserts
//     "<name>." and re-triggers completion
//  2. if the prefix contains a dot, the items of the category named before
//     the first dot, filtered by the trimmed remainder; otherwise every
//     keyword in the flattened dictionary that starts with the raw prefix
//
// An unknown document, an out-of-range line, or a cursor past the end of the
// line all yield an empty list.
func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	items := []protocol.CompletionItem{}

	text, ok := s.docs.Text(params.TextDocument.URI)
	if !ok {
		return &protocol.CompletionList{Items: items}, nil
	}

	lines := strings.Split(text, "\n")
	if int(params.Position.Line) >= len(lines) {
		return &protocol.CompletionList{Items: items}, nil
	}

	line := []rune(lines[params.Position.Line])

	column := int(params.Position.Character)
	if column > len(line) {
		return &protocol.CompletionList{Items: items}, nil
	}

	prefix := string(line[:column])

	items = append(items, s.completeCategories(prefix)...)

	if categoryName, itemPrefix, found := strings.Cut(prefix, "."); found {
		items = append(items, s.completeCategoryItems(categoryName, strings.TrimSpace(itemPrefix))...)
	} else {
		items = append(items, s.completeKeywords(prefix)...)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// completeCategories returns an item per category whose name starts with the
// prefix. Accepting one inserts the dotted form and immediately re-triggers
// completion so the category's items are offered next.
func (s *Server) completeCategories(prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	for _, name := range s.dict.CategoryNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		cat, _ := s.dict.Category(name)

		items = append(items, protocol.CompletionItem{
			Label:         name,
			Kind:          protocol.CompletionItemKindModule,
			Documentation: cat.Description,
			InsertText:    name + ".",
			Command: &protocol.Command{
				Title:   "Trigger Suggestion",
				Command: "editor.action.triggerSuggest",
			},
		})
	}

	return items
}

// completeCategoryItems returns an item per keyword of the named category
// whose key starts with the prefix.
func (s *Server) completeCategoryItems(categoryName, prefix string) []protocol.CompletionItem {
	cat, ok := s.dict.Category(categoryName)
	if !ok {
		return nil
	}

	return keywordItems(cat.Items, prefix)
}

// completeKeywords returns an item per flattened dictionary keyword starting
// with the prefix.
func (s *Server) completeKeywords(prefix string) []protocol.CompletionItem {
	return keywordItems(s.dict.AllKeywords(), prefix)
}

// keywordItems builds keyword completion items in sorted label order; map
// iteration order is not a contract we want on the wire.
func keywordItems(keywords map[string]string, prefix string) []protocol.CompletionItem {
	labels := make([]string, 0, len(keywords))

	for word := range keywords {
		if strings.HasPrefix(word, prefix) {
			labels = append(labels, word)
		}
	}

	sort.Strings(labels)

	items := make([]protocol.CompletionItem, 0, len(labels))
	for _, word := range labels {
		items = append(items, protocol.CompletionItem{
			Label:         word,
			Kind:          protocol.CompletionItemKindKeyword,
			Documentation: keywords[word],
			InsertText:    word,
		})
	}

	return items
}
