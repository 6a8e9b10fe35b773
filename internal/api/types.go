package api

import (
	"github.com/schoolyard/roster/server/domain/entities"
)

// StudentPayload is the wire shape of a student in create requests.
// Identifiers and dates arrive as strings and are normalized before
// persistence.
type StudentPayload struct {
	ID          string              `json:"id,omitempty"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	DateOfBirth string              `json:"date_of_birth,omitempty"`
	Enrollments []EnrollmentPayload `json:"enrollments,omitempty"`
}

// EnrollmentPayload is the wire shape of an enrollment entry.
type EnrollmentPayload struct {
	ClassID    string `json:"class_id"`
	EnrolledAt string `json:"enrolled_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StudentsResponse wraps a list of students.
type StudentsResponse struct {
	Students []entities.Student `json:"students"`
}

func (p StudentPayload) toRaw() entities.RawStudent {
	raw := entities.RawStudent{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
	}
	for _, enrollment := range p.Enrollments {
		raw.Enrollments = append(raw.Enrollments, entities.RawEnrollment{
			ClassID:    enrollment.ClassID,
			EnrolledAt: enrollment.EnrolledAt,
		})
	}
	return raw
}
