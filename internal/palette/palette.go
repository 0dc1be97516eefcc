// Package palette holds the read-only catalog of node types the whiteboard
// can instantiate. The catalog is loaded once and never changes afterwards.
package palette

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

// Descriptor describes one node type.
type Descriptor struct {
	Type       string `yaml:"type"`
	Label      string `yaml:"label"`
	Icon       string `yaml:"icon"`
	ColorToken string `yaml:"color"`
}

// Category is a named, ordered group of descriptors.
type Category struct {
	Name  string       `yaml:"name"`
	Types []Descriptor `yaml:"types"`
}

type document struct {
	Categories []Category `yaml:"categories"`
}

type entry struct {
	desc     Descriptor
	category string
}

// Catalog is the immutable category -> type table.
type Catalog struct {
	categories []Category
	index      map[string]entry
}

// Default parses the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from a YAML document. Types must be non-empty and
// unique across all categories, and there must be at least one.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("parse palette: no categories")
	}

	c := &Catalog{index: make(map[string]entry)}
	for _, cat := range doc.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("parse palette: category without a name")
		}
		for _, d := range cat.Types {
			if d.Type == "" {
				return nil, fmt.Errorf("parse palette: category %q has a type without a key", cat.Name)
			}
			if prev, dup := c.index[d.Type]; dup {
				return nil, fmt.Errorf("parse palette: type %q listed in both %q and %q", d.Type, prev.category, cat.Name)
			}
			if d.Label == "" {
				d.Label = d.Type
			}
			c.index[d.Type] = entry{desc: d, category: cat.Name}
		}
		types := make([]Descriptor, len(cat.Types))
		for i, d := range cat.Types {
			types[i] = c.index[d.Type].desc
		}
		c.categories = append(c.categories, Category{Name: cat.Name, Types: types})
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("parse palette: no node types")
	}
	return c, nil
}

// Lookup returns the descriptor for typ and the name of its category.
func (c *Catalog) Lookup(typ string) (Descriptor, string, bool) {
	e, ok := c.index[typ]
	return e.desc, e.category, ok
}

// Categories returns the categories in display order. The result is a copy.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Types: append([]Descriptor(nil), cat.Types...)}
	}
	return out
}

// Types returns every type key in display order.
func (c *Catalog) Types() []string {
	var keys []string
	for _, cat := range c.categories {
		for _, d := range cat.Types {
			keys = append(keys, d.Type)
		}
	}
	return keys
}

func (c *Catalog) Len() int {
	return len(c.index)
}
