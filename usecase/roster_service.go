package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
	"github.com/schoolyard/roster/server/domain/repositories"
)

// RosterService handles student record intake and lookups. Raw records
// are normalized before they reach the store; errors from either step
// propagate to the caller unmodified.
type RosterService struct {
	students repositories.StudentRepository
	logger   *zap.Logger
}

// NewRosterService creates a new roster service.
func NewRosterService(students repositories.StudentRepository, logger *zap.Logger) *RosterService {
	return &RosterService{students: students, logger: logger}
}

// RegisterStudents normalizes the raw records and persists them as one
// batch. Any malformed record aborts the whole batch before the store
// is touched.
func (s *RosterService) RegisterStudents(ctx context.Context, raws []entities.RawStudent) ([]entities.Student, error) {
	students := make([]entities.Student, 0, len(raws))
	for _, raw := range raws {
		student, err := entities.NormalizeStudent(raw)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return s.students.AddStudents(ctx, students)
}

// ListStudents returns every student.
func (s *RosterService) ListStudents(ctx context.Context) ([]entities.Student, error) {
	return s.students.GetStudents(ctx)
}

// FindStudent returns the student with the given identifier, or nil.
func (s *RosterService) FindStudent(ctx context.Context, id string) (*entities.Student, error) {
	return s.students.SearchByID(ctx, id)
}

// SearchStudents returns students matching the free-form name query.
func (s *RosterService) SearchStudents(ctx context.Context, name string) ([]entities.Student, error) {
	return s.students.SearchByName(ctx, name)
}

// ClassMembers returns the students enrolled in the given class.
func (s *RosterService) ClassMembers(ctx context.Context, classID string) ([]entities.Student, error) {
	return s.students.SearchByClass(ctx, classID)
}
