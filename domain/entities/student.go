package entities

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a student record as stored in the students collection.
type Student struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName   string             `json:"first_name" bson:"first_name"`
	LastName    string             `json:"last_name" bson:"last_name"`
	DateOfBirth *time.Time         `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Enrollments []Enrollment       `json:"enrollments" bson:"enrollments"`
}

// Enrollment associates a student with a class at a point in time.
// Enrollments keep insertion order and are not deduplicated here.
type Enrollment struct {
	ClassID    primitive.ObjectID `json:"class_id" bson:"class_id"`
	EnrolledAt time.Time          `json:"enrolled_at" bson:"enrolled_at"`
}

// RawStudent is the loosely typed shape a student record arrives in:
// identifiers and dates may be plain strings.
type RawStudent struct {
	ID          string          `json:"id,omitempty"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	DateOfBirth string          `json:"date_of_birth,omitempty"`
	Enrollments []RawEnrollment `json:"enrollments,omitempty"`
}

// RawEnrollment is the loosely typed shape of an enrollment entry.
type RawEnrollment struct {
	ClassID    string `json:"class_id"`
	EnrolledAt string `json:"enrolled_at"`
}

// dateLayouts are the accepted date string formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// NormalizeStudent converts a RawStudent into a typed Student. Scalar
// fields are copied unchanged; identifiers are converted to ObjectIDs
// and date strings are parsed. Any malformed identifier or date aborts
// the whole normalization, there is no partial result. The function is
// pure: no I/O, no side effects.
func NormalizeStudent(raw RawStudent) (Student, error) {
	student := Student{
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
	}

	if raw.ID != "" {
		id, err := primitive.ObjectIDFromHex(raw.ID)
		if err != nil {
			return Student{}, fmt.Errorf("%w: student id %q", ErrInvalidIdentifier, raw.ID)
		}
		student.ID = id
	}

	// An absent date of birth stays absent, it is never defaulted.
	if raw.DateOfBirth != "" {
		dob, err := parseDate(raw.DateOfBirth)
		if err != nil {
			return Student{}, fmt.Errorf("%w: date of birth %q", ErrInvalidDate, raw.DateOfBirth)
		}
		student.DateOfBirth = &dob
	}

	for i, rawEnrollment := range raw.Enrollments {
		classID, err := primitive.ObjectIDFromHex(rawEnrollment.ClassID)
		if err != nil {
			return Student{}, fmt.Errorf("%w: enrollment %d class id %q", ErrInvalidIdentifier, i, rawEnrollment.ClassID)
		}
		enrolledAt, err := parseDate(rawEnrollment.EnrolledAt)
		if err != nil {
			return Student{}, fmt.Errorf("%w: enrollment %d date %q", ErrInvalidDate, i, rawEnrollment.EnrolledAt)
		}
		student.Enrollments = append(student.Enrollments, Enrollment{
			ClassID:    classID,
			EnrolledAt: enrolledAt,
		})
	}

	return student, nil
}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		parsed, err = time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
