package repositories

import (
	"context"

	"github.com/schoolyard/roster/server/domain/entities"
)

// ClassRepository defines data access methods for class documents.
// Classes are created elsewhere; this layer only reads them to resolve
// membership.
type ClassRepository interface {
	// FindByID returns the class with the given identifier, or nil when
	// no such class exists.
	FindByID(ctx context.Context, id string) (*entities.Class, error)
}
