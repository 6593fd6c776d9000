// Package catalog is the static symbol table the datafeed serves.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ChartFeed/internal/model"

	"gopkg.in/yaml.v3"
)

// ErrSymbolNotFound is returned by Resolve for symbols outside the catalog.
var ErrSymbolNotFound = errors.New("symbol not found")

// Category groups descriptors for display.
type Category struct {
	Name    string                     `yaml:"name"`
	Symbols []model.CurrencyDescriptor `yaml:"symbols"`
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	categories []Category
	entries    []model.CurrencyDescriptor
	bySymbol   map[string]int // upper-cased symbol -> index into entries
}

// New builds a catalog. Symbols must be unique across all categories.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{bySymbol: make(map[string]int)}
	for _, cat := range categories {
		kept := Category{Name: cat.Name}
		for _, d := range cat.Symbols {
			d.Symbol = strings.TrimSpace(d.Symbol)
			if d.Symbol == "" {
				return nil, fmt.Errorf("category %q: empty symbol", cat.Name)
			}
			key := strings.ToUpper(d.Symbol)
			if _, dup := c.bySymbol[key]; dup {
				return nil, fmt.Errorf("category %q: duplicate symbol %s", cat.Name, d.Symbol)
			}
			d.Category = cat.Name
			c.bySymbol[key] = len(c.entries)
			c.entries = append(c.entries, d)
			kept.Symbols = append(kept.Symbols, d)
		}
		c.categories = append(c.categories, kept)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err) // the built-in table is static
	}
	return c
}

// Load reads a YAML catalog of the form
//
//	categories:
//	  - name: Major Currencies
//	    symbols:
//	      - {symbol: GAUEUR, name: GAU vs EUR, description: Euro}
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s: no categories", path)
	}
	return New(doc.Categories)
}

// Resolve looks a symbol up case-insensitively.
func (c *Catalog) Resolve(symbol string) (model.CurrencyDescriptor, error) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return model.CurrencyDescriptor{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return c.entries[i], nil
}

// Canonical returns the catalog's casing of symbol.
func (c *Catalog) Canonical(symbol string) (string, error) {
	d, err := c.Resolve(symbol)
	if err != nil {
		return "", err
	}
	return d.Symbol, nil
}

// Search matches query against symbol, display name and description,
// ignoring case. Queries of at most one character return everything.
func (c *Catalog) Search(query string) []model.CurrencyDescriptor {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.CurrencyDescriptor, 0, len(c.entries))
	for _, d := range c.entries {
		if len([]rune(q)) <= 1 ||
			strings.Contains(strings.ToLower(d.Symbol), q) ||
			strings.Contains(strings.ToLower(d.DisplayName), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}

// Symbols lists every symbol in catalog order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.entries))
	for i, d := range c.entries {
		out[i] = d.Symbol
	}
	return out
}

// Categories returns the catalog grouped by category.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Symbols: append([]model.CurrencyDescriptor(nil), cat.Symbols...)}
	}
	return out
}
