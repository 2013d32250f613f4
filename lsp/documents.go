package lsp

import (
	"sync"

	"go.lsp.dev/protocol"
)

// Document is an open text buffer identified by its URI.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Text    string
}

// DocumentStore holds the full current text of every document the editor has
// opened. Whole-document replacement is the only mutation, guarded by a
// single reader-writer lock; readers always see a complete snapshot, never a
// partially written update. There is no removal path: closed documents keep
// their last text for the lifetime of the process.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]*Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[protocol.DocumentURI]*Document),
	}
}

// Open inserts the document, overwriting any previous text unconditionally.
func (s *DocumentStore) Open(uri protocol.DocumentURI, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[uri] = &Document{URI: uri, Version: version, Text: text}
}

// Apply replaces the document's text with the full new content. The
// overwrite is unconditional: a change for a document that was never opened
// inserts it.
func (s *DocumentStore) Apply(uri protocol.DocumentURI, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		s.docs[uri] = &Document{URI: uri, Version: version, Text: text}

		return
	}

	doc.Version = version
	doc.Text = text
}

// Get returns a snapshot of the document.
func (s *DocumentStore) Get(uri protocol.DocumentURI) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, false
	}

	return *doc, true
}

// Text returns the document's current text.
func (s *DocumentStore) Text(uri protocol.DocumentURI) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}

	return doc.Text, true
}

// Len returns the number of tracked documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}
