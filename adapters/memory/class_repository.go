package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schoolyard/roster/server/domain/entities"
)

// ClassRepository is an in-memory implementation of
// repositories.ClassRepository.
type ClassRepository struct {
	mu      sync.RWMutex
	classes map[primitive.ObjectID]entities.Class
}

// NewClassRepository creates an empty in-memory class repository.
func NewClassRepository() *ClassRepository {
	return &ClassRepository{classes: make(map[primitive.ObjectID]entities.Class)}
}

// Seed stores a class document, assigning an identifier if needed.
// Classes are created outside the data-access layer; Seed stands in for
// that collaborator in tests and development.
func (r *ClassRepository) Seed(class entities.Class) entities.Class {
	r.mu.Lock()
	defer r.mu.Unlock()

	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
	}
	r.classes[class.ID] = class
	return class
}

// FindByID returns the class with the given identifier, or nil.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*entities.Class, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: class id %q", entities.ErrInvalidIdentifier, id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	class, ok := r.classes[objectID]
	if !ok {
		return nil, nil
	}
	return &class, nil
}
