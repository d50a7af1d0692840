package node

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreDirty = cmp.Options{
	cmpopts.IgnoreFields(Base{}, "IsChanged"),
	cmpopts.EquateEmpty(),
}

// Equal compares two nodes deeply, ignoring the dirty flag. Nil and empty
// maps or slices compare equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	return cmp.Equal(a, b, ignoreDirty)
}

// Diff reports the differences between two nodes in human readable form,
// ignoring the dirty flag. It is empty if Equal(a, b) holds.
func Diff(a, b Node) string {
	return cmp.Diff(a, b, ignoreDirty)
}

// Identical compares two nodes deeply, including the dirty flag.
func Identical(a, b Node) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}
