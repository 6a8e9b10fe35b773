package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
)

// ClassRepository implements repositories.ClassRepository using MongoDB.
// Classes are read-only from this layer: they are created and mutated
// by a separate system.
type ClassRepository struct {
	classes collection
	logger  *zap.Logger
}

// NewClassRepository creates a new MongoDB class repository.
func NewClassRepository(db *mongodriver.Database, logger *zap.Logger) *ClassRepository {
	return &ClassRepository{
		classes: wrapCollection(db.Collection("classes")),
		logger:  logger,
	}
}

func newClassRepository(classes collection, logger *zap.Logger) *ClassRepository {
	return &ClassRepository{classes: classes, logger: logger}
}

// FindByID returns the class with the given identifier, or nil when no
// such class exists.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*entities.Class, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: class id %q", entities.ErrInvalidIdentifier, id)
	}

	var class entities.Class
	if err := r.classes.FindOne(ctx, bson.M{"_id": objectID}).Decode(&class); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &class, nil
}
