// Package memory provides in-memory repository implementations with the
// same semantics as the MongoDB adapters. They back handler tests and
// local development without a running store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schoolyard/roster/server/domain/entities"
	"github.com/schoolyard/roster/server/domain/repositories"
)

// StudentRepository is an in-memory implementation of
// repositories.StudentRepository.
type StudentRepository struct {
	mu       sync.RWMutex
	students []entities.Student
	classes  repositories.ClassRepository
}

// NewStudentRepository creates an empty in-memory student repository.
func NewStudentRepository(classes repositories.ClassRepository) *StudentRepository {
	return &StudentRepository{classes: classes}
}

// AddStudents appends the batch, generating identifiers for records
// that arrive without one. The batch is copied so the stored records do
// not alias the caller's slice.
func (r *StudentRepository) AddStudents(ctx context.Context, students []entities.Student) ([]entities.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]entities.Student, len(students))
	copy(created, students)
	for i := range created {
		if created[i].ID.IsZero() {
			created[i].ID = primitive.NewObjectID()
		}
	}
	r.students = append(r.students, created...)

	return created, nil
}

// GetStudents returns every stored student.
func (r *StudentRepository) GetStudents(ctx context.Context) ([]entities.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]entities.Student, len(r.students))
	copy(students, r.students)
	return students, nil
}

// SearchByID returns the student with the given identifier, or nil.
func (r *StudentRepository) SearchByID(ctx context.Context, id string) (*entities.Student, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: student id %q", entities.ErrInvalidIdentifier, id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, student := range r.students {
		if student.ID == objectID {
			match := student
			return &match, nil
		}
	}
	return nil, nil
}

// SearchByName applies the same token semantics as the MongoDB
// repository: every whitespace-separated token must match the first or
// last name as a case-insensitive substring. Blank input matches all.
func (r *StudentRepository) SearchByName(ctx context.Context, name string) ([]entities.Student, error) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		tokens = []string{""}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []entities.Student
	for _, student := range r.students {
		if nameMatches(student, tokens) {
			matches = append(matches, student)
		}
	}
	return matches, nil
}

// SearchByClass resolves membership through the class repository. A
// missing class and an empty class both yield nil.
func (r *StudentRepository) SearchByClass(ctx context.Context, classID string) ([]entities.Student, error) {
	class, err := r.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil || len(class.StudentIDs) == 0 {
		return nil, nil
	}

	members := make(map[primitive.ObjectID]bool, len(class.StudentIDs))
	for _, id := range class.StudentIDs {
		members[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []entities.Student
	for _, student := range r.students {
		if members[student.ID] {
			matches = append(matches, student)
		}
	}
	return matches, nil
}

func nameMatches(student entities.Student, tokens []string) bool {
	first := strings.ToLower(student.FirstName)
	last := strings.ToLower(student.LastName)
	for _, token := range tokens {
		token = strings.ToLower(token)
		if !strings.Contains(first, token) && !strings.Contains(last, token) {
			return false
		}
	}
	return true
}
