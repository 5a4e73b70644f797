package taxonomy

import (
	"errors"
	"fmt"
)

// ErrSubcategoryWithoutCategory is returned when a subcategory is set but
// its category is not.
var ErrSubcategoryWithoutCategory = errors.New("subcategory requires a category")

// UnknownCategoryError reports a reference to a category that is not defined.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Category)
}

// UnknownSubcategoryError reports a reference to a subcategory that is not
// defined under its category.
type UnknownSubcategoryError struct {
	Category    string
	Subcategory string
}

func (e *UnknownSubcategoryError) Error() string {
	return fmt.Sprintf("unknown subcategory %q in category %q", e.Subcategory, e.Category)
}
