package doctree

import (
	"github.com/google/uuid"
)

// IDGenerator produces unique identifiers for synthesized nodes.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to IDGenerator.
type IDFunc func() string

// NewID is part of interface IDGenerator.
func (f IDFunc) NewID() string { return f() }

// uuidGenerator hands out version 7 UUIDs, which sort by creation time.
type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		tracer().Errorf("cannot create v7 uuid: %v", err)
		return uuid.NewString()
	}
	return id.String()
}
