package repositories

import (
	"context"

	"github.com/schoolyard/roster/server/domain/entities"
)

// StudentRepository defines data access methods for student records.
// "Not found" is reported as a nil result, never as an error.
// Implementations vary by target store.
type StudentRepository interface {
	// AddStudents persists a batch of students in one call and returns
	// the created records with their generated identifiers filled in.
	AddStudents(ctx context.Context, students []entities.Student) ([]entities.Student, error)
	// GetStudents returns every student in the collection.
	GetStudents(ctx context.Context) ([]entities.Student, error)
	// SearchByID returns the student with the given identifier, or nil
	// when no such student exists.
	SearchByID(ctx context.Context, id string) (*entities.Student, error)
	// SearchByName returns students whose first or last name matches
	// every whitespace-separated token of name as a case-insensitive
	// substring.
	SearchByName(ctx context.Context, name string) ([]entities.Student, error)
	// SearchByClass returns the members of the given class. A missing
	// class and a class with no members both yield a nil result.
	SearchByClass(ctx context.Context, classID string) ([]entities.Student, error)
}
