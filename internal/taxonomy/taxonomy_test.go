package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_CategoryOrder(t *testing.T) {
	tax := Default()

	var names []string
	for _, c := range tax.Categories() {
		names = append(names, c.Name)
	}

	require.Equal(t, []string{"discover", "prims", "scan", "serve"}, names)
}

func TestDefault_Subcategories(t *testing.T) {
	tax := Default()

	discover := tax.Category("discover")
	require.NotNil(t, discover)
	require.NotNil(t, discover.Subcategory("uds"))
	require.NotNil(t, discover.Subcategory("xcp"))

	serve := tax.Category("serve")
	require.NotNil(t, serve)
	require.Empty(t, serve.Subcategories)
}

func TestResolve(t *testing.T) {
	tax := Default()

	tests := []struct {
		name        string
		category    string
		subcategory string
		check       func(t *testing.T, err error)
	}{
		{
			name: "root",
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:     "category only",
			category: "serve",
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:        "category and subcategory",
			category:    "prims",
			subcategory: "uds",
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:        "subcategory without category",
			subcategory: "uds",
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrSubcategoryWithoutCategory)
			},
		},
		{
			name:     "unknown category",
			category: "fuzz",
			check: func(t *testing.T, err error) {
				var target *UnknownCategoryError
				require.True(t, errors.As(err, &target))
				require.Equal(t, "fuzz", target.Category)
			},
		},
		{
			name:        "unknown subcategory",
			category:    "prims",
			subcategory: "xcp",
			check: func(t *testing.T, err error) {
				var target *UnknownSubcategoryError
				require.True(t, errors.As(err, &target))
				require.Equal(t, "xcp", target.Subcategory)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tax.Resolve(tt.category, tt.subcategory))
		})
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(Category{Name: "a"}, Category{Name: "a"})
	require.Error(t, err)

	_, err = New(Category{Name: "a", Subcategories: []Subcategory{{Name: "x"}, {Name: "x"}}})
	require.Error(t, err)

	_, err = New(Category{Name: ""})
	require.Error(t, err)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	tax := Default()

	cats := tax.Categories()
	cats[0].Name = "mutated"

	require.Equal(t, "discover", tax.Categories()[0].Name)
}
