// Package taxonomy defines the fixed two-level grouping under which
// probes are organized on the command line.
package taxonomy

import (
	"errors"
	"fmt"
)

// Subcategory is the second grouping level. It belongs to exactly one Category.
type Subcategory struct {
	Name string
	Help string
}

// Category is the first grouping level below the program root.
type Category struct {
	Name          string
	Help          string
	Subcategories []Subcategory
}

// Subcategory returns the named subcategory, or nil.
func (c *Category) Subcategory(name string) *Subcategory {
	for i := range c.Subcategories {
		if c.Subcategories[i].Name == name {
			return &c.Subcategories[i]
		}
	}
	return nil
}

// Taxonomy is an immutable, ordered set of categories.
type Taxonomy struct {
	categories []Category
}

// New builds a Taxonomy from the given categories.
// Duplicate category names, or duplicate subcategory names inside one
// category, are rejected.
func New(categories ...Category) (*Taxonomy, error) {
	seen := make(map[string]bool, len(categories))
	out := make([]Category, 0, len(categories))

	for _, c := range categories {
		if c.Name == "" {
			return nil, errors.New("taxonomy: category name is empty")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("taxonomy: duplicate category %q", c.Name)
		}
		seen[c.Name] = true

		subSeen := make(map[string]bool, len(c.Subcategories))
		subs := make([]Subcategory, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			if s.Name == "" {
				return nil, fmt.Errorf("taxonomy: empty subcategory name in %q", c.Name)
			}
			if subSeen[s.Name] {
				return nil, fmt.Errorf("taxonomy: duplicate subcategory %q in %q", s.Name, c.Name)
			}
			subSeen[s.Name] = true
			subs = append(subs, s)
		}
		c.Subcategories = subs
		out = append(out, c)
	}

	return &Taxonomy{categories: out}, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(categories ...Category) *Taxonomy {
	t, err := New(categories...)
	if err != nil {
		panic(err)
	}
	return t
}

// Categories returns the categories in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Category returns the named category, or nil.
func (t *Taxonomy) Category(name string) *Category {
	for i := range t.categories {
		if t.categories[i].Name == name {
			return &t.categories[i]
		}
	}
	return nil
}

// Resolve checks that a (category, subcategory) reference exists.
// Both empty addresses the root and is always valid.
func (t *Taxonomy) Resolve(category, subcategory string) error {
	if category == "" {
		if subcategory != "" {
			return ErrSubcategoryWithoutCategory
		}
		return nil
	}

	c := t.Category(category)
	if c == nil {
		return &UnknownCategoryError{Category: category}
	}

	if subcategory != "" && c.Subcategory(subcategory) == nil {
		return &UnknownSubcategoryError{Category: category, Subcategory: subcategory}
	}

	return nil
}
