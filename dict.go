// Package sapf provides the language core for the sapf language server:
// the word dictionary that backs hover and completion, and the lexical
// scanner that classifies source text for semantic highlighting.
package sapf

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Category groups related words under a shared description.
// A category is immutable after load.
type Category struct {
	Description string            `yaml:"description"`
	Items       map[string]string `yaml:"items"`
}

// Dictionary is the knowledge base the server answers from: a read-only
// mapping from category name to Category. It is built once at startup and
// shared by reference across all request handlers, so it needs no locking.
type Dictionary struct {
	categories map[string]Category
	names      []string // sorted category names
}

//go:embed values.yaml
var valuesYAML []byte

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the dictionary built from the embedded payload.
// The payload is a build artifact; failing to parse it is a programming
// error, not a runtime condition.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		defaultDict = MustLoad(valuesYAML)
	})

	return defaultDict
}

// Load parses a dictionary payload: a YAML mapping from category name to
// {description, items}.
func Load(data []byte) (*Dictionary, error) {
	var categories map[string]Category

	err := yaml.Unmarshal(data, &categories)
	if err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}

	sort.Strings(names)

	return &Dictionary{categories: categories, names: names}, nil
}

// MustLoad is Load that panics on a malformed payload.
func MustLoad(data []byte) *Dictionary {
	d, err := Load(data)
	if err != nil {
		panic(err)
	}

	return d
}

// Category looks up a category by exact name.
func (d *Dictionary) Category(name string) (Category, bool) {
	cat, ok := d.categories[name]

	return cat, ok
}

// Keyword looks up a word against every category's items by exact match.
// Categories are consulted in sorted name order, so a keyword defined in
// more than one category deterministically resolves to the
// lexicographically-first one.
func (d *Dictionary) Keyword(word string) (string, bool) {
	for _, name := range d.names {
		if doc, ok := d.categories[name].Items[word]; ok {
			return doc, true
		}
	}

	return "", false
}

// AllKeywords flattens every category into a single keyword-to-documentation
// mapping. The result is a fresh map on every call; callers may not mutate
// the dictionary through it. Duplicates resolve the same way Keyword does.
func (d *Dictionary) AllKeywords() map[string]string {
	all := make(map[string]string)

	for _, name := range d.names {
		for word, doc := range d.categories[name].Items {
			if _, ok := all[word]; !ok {
				all[word] = doc
			}
		}
	}

	return all
}

// CategoryNames returns the category names in sorted order.
func (d *Dictionary) CategoryNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)

	return names
}

// Len returns the number of categories.
func (d *Dictionary) Len() int {
	return len(d.categories)
}
