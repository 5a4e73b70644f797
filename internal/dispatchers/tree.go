package dispatchers

import (
	"fmt"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/registry"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/ecuprobe/cli/internal/usage"
)

const rootSummary = "probe and exercise automotive ECUs"

// BuildTree creates the root and one internal node per taxonomy category
// and subcategory, in taxonomy order.
func BuildTree(tax *taxonomy.Taxonomy) *DispatchNode {
	root := Root(RootSpec{
		Name:    usage.Program,
		Summary: rootSummary,
	})

	for _, c := range tax.Categories() {
		cat := Group(GroupSpec{
			Name:    c.Name,
			Parent:  root,
			Summary: c.Help,
		})

		for _, s := range c.Subcategories {
			Group(GroupSpec{
				Name:    s.Name,
				Parent:  cat,
				Summary: s.Help,
			})
		}
	}

	return root
}

// Register binds every descriptor in reg as a leaf under root. It stops at
// the first descriptor that cannot be bound.
func Register(root *DispatchNode, reg *registry.Registry) error {
	for _, d := range reg.All() {
		if _, err := RegisterCommand(root, d); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCommand attaches d as a leaf under the node its category and
// subcategory name. A failed registration leaves the tree unchanged.
func RegisterCommand(root *DispatchNode, d command.Descriptor) (leaf *DispatchNode, err error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	parent, err := parentFor(root, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Address(), err)
	}

	if existing, ok := parent.Children[d.ID]; ok {
		kind := "command"
		if !existing.IsLeaf() {
			kind = "group"
		}
		return nil, &registry.ConflictError{Address: d.Address(), Existing: kind}
	}

	leaf = Command(CommandSpec{
		Name:        d.ID,
		Parent:      parent,
		Summary:     d.Short,
		Description: d.Description(),
		Args:        d.Args,
		Action:      CommandFunc(d.Main),
	})

	if d.AddFlags == nil {
		return leaf, nil
	}

	defer func() {
		if r := recover(); r != nil {
			parent.removeChild(d.ID)
			leaf = nil
			err = fmt.Errorf("%s: flag declaration failed: %v", d.Address(), r)
		}
	}()

	d.AddFlags(leaf.Flags)
	return leaf, nil
}

func parentFor(root *DispatchNode, d command.Descriptor) (*DispatchNode, error) {
	if d.Category == "" {
		if d.Subcategory != "" {
			return nil, taxonomy.ErrSubcategoryWithoutCategory
		}
		return root, nil
	}

	cat, ok := root.Children[d.Category]
	if !ok || cat.IsLeaf() {
		return nil, &taxonomy.UnknownCategoryError{Category: d.Category}
	}

	if d.Subcategory == "" {
		return cat, nil
	}

	sub, ok := cat.Children[d.Subcategory]
	if !ok || sub.IsLeaf() {
		return nil, &taxonomy.UnknownSubcategoryError{Category: d.Category, Subcategory: d.Subcategory}
	}

	return sub, nil
}
