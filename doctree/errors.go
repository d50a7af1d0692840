package doctree

import "errors"

// Errors of the mutation API. Mutations wrap them with context.
var (
	// ErrReferenceMissing flags an identifier not present in the document.
	ErrReferenceMissing = errors.New("reference missing")
	// ErrTypeMismatch flags an operation across incompatible node types.
	ErrTypeMismatch = errors.New("node type mismatch")
	// ErrStructuralViolation flags an edit which would break the tree's shape.
	ErrStructuralViolation = errors.New("structural violation")
	// ErrRootLost is fatal: the document holds nodes but no root. It has to
	// be reloaded.
	ErrRootLost = errors.New("root pointer lost")
)

// Errors of the history.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

func reasonOf(err error) string {
	switch {
	case errors.Is(err, ErrReferenceMissing):
		return "reference_missing"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrStructuralViolation):
		return "structural_violation"
	case errors.Is(err, ErrRootLost):
		return "root_lost"
	}
	return "other"
}

// reject logs a failed mutation and counts it. It returns err.
func (d *Document) reject(op Op, err error) error {
	tracer().P("op", op.String()).Errorf("%v", err)
	d.metrics.reject(err)
	return err
}
