package lsp_test

import (
	"fmt"
	"sync"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/vasilymilovidov/sapf-lsp/lsp"
)

func TestDocumentStore_OpenGet(t *testing.T) {
	t.Parallel()

	store := lsp.NewDocumentStore()
	store.Open("file:///a.sapf", 1, "add 1 2")

	doc, ok := store.Get("file:///a.sapf")
	if !ok {
		t.Fatal("Get() did not find opened document")
	}

	if doc.Text != "add 1 2" {
		t.Errorf("Text = %q, want %q", doc.Text, "add 1 2")
	}

	if doc.Version != 1 {
		t.Errorf("Version = %d, want 1", doc.Version)
	}

	_, ok = store.Get("file:///missing.sapf")
	if ok {
		t.Error("Get() found a document that was never stored")
	}
}

func TestDocumentStore_ApplyReplaces(t *testing.T) {
	t.Parallel()

	store := lsp.NewDocumentStore()
	store.Open("file:///a.sapf", 1, "add 1 2")
	store.Apply("file:///a.sapf", 2, "mul")

	text, ok := store.Text("file:///a.sapf")
	if !ok {
		t.Fatal("Text() did not find document")
	}

	// Full replacement, never a merge.
	if text != "mul" {
		t.Errorf("Text after Apply = %q, want %q", text, "mul")
	}
}

func TestDocumentStore_ApplyUpserts(t *testing.T) {
	t.Parallel()

	store := lsp.NewDocumentStore()
	store.Apply("file:///new.sapf", 1, "sinosc 440")

	text, ok := store.Text("file:///new.sapf")
	if !ok {
		t.Fatal("Apply() on an unknown URI did not store the document")
	}

	if text != "sinosc 440" {
		t.Errorf("Text = %q, want %q", text, "sinosc 440")
	}
}

func TestDocumentStore_ReopenOverwrites(t *testing.T) {
	t.Parallel()

	store := lsp.NewDocumentStore()
	store.Open("file:///a.sapf", 1, "first")
	store.Open("file:///a.sapf", 1, "second")

	text, _ := store.Text("file:///a.sapf")
	if text != "second" {
		t.Errorf("Text after reopen = %q, want %q", text, "second")
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestDocumentStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := lsp.NewDocumentStore()

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(2)

		uri := protocol.DocumentURI(fmt.Sprintf("file:///doc-%d.sapf", i))

		go func() {
			defer wg.Done()

			for v := range 50 {
				store.Apply(uri, int32(v), "add") //nolint:gosec // test loop bound
			}
		}()

		go func() {
			defer wg.Done()

			for range 50 {
				_, _ = store.Text(uri)
				_ = store.Len()
			}
		}()
	}

	wg.Wait()

	if store.Len() != 8 {
		t.Errorf("Len() = %d, want 8", store.Len())
	}
}
