package entities

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeStudent(t *testing.T) {
	raw := RawStudent{
		ID:          "507f1f77bcf86cd799439011",
		FirstName:   "Anna",
		LastName:    "Lee",
		DateOfBirth: "2008-03-14",
		Enrollments: []RawEnrollment{
			{ClassID: "507f191e810c19729de860ea", EnrolledAt: "2024-09-01T08:00:00Z"},
		},
	}

	student, err := NormalizeStudent(raw)
	if err != nil {
		t.Fatalf("Failed to normalize student: %v", err)
	}

	if student.ID.Hex() != raw.ID {
		t.Errorf("Expected id %s, got %s", raw.ID, student.ID.Hex())
	}
	if student.FirstName != "Anna" || student.LastName != "Lee" {
		t.Errorf("Expected scalar fields unchanged, got %s %s", student.FirstName, student.LastName)
	}

	if student.DateOfBirth == nil {
		t.Fatal("Expected date of birth to be set")
	}
	wantDOB := time.Date(2008, 3, 14, 0, 0, 0, 0, time.UTC)
	if !student.DateOfBirth.Equal(wantDOB) {
		t.Errorf("Expected date of birth %v, got %v", wantDOB, student.DateOfBirth)
	}

	if len(student.Enrollments) != 1 {
		t.Fatalf("Expected 1 enrollment, got %d", len(student.Enrollments))
	}
	if student.Enrollments[0].ClassID.Hex() != raw.Enrollments[0].ClassID {
		t.Errorf("Expected class id %s, got %s", raw.Enrollments[0].ClassID, student.Enrollments[0].ClassID.Hex())
	}
	wantEnrolled := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	if !student.Enrollments[0].EnrolledAt.Equal(wantEnrolled) {
		t.Errorf("Expected enrolled at %v, got %v", wantEnrolled, student.Enrollments[0].EnrolledAt)
	}
}

func TestNormalizeStudentIdempotent(t *testing.T) {
	raw := RawStudent{
		ID:          "507f1f77bcf86cd799439011",
		FirstName:   "Hannah",
		LastName:    "Lee",
		DateOfBirth: "2007-11-02",
	}

	first, err := NormalizeStudent(raw)
	if err != nil {
		t.Fatalf("Failed to normalize student: %v", err)
	}

	// Re-serialize the normalized record and normalize again.
	again := RawStudent{
		ID:          first.ID.Hex(),
		FirstName:   first.FirstName,
		LastName:    first.LastName,
		DateOfBirth: first.DateOfBirth.Format(time.RFC3339),
	}
	second, err := NormalizeStudent(again)
	if err != nil {
		t.Fatalf("Failed to re-normalize student: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected stable id, got %s then %s", first.ID.Hex(), second.ID.Hex())
	}
	if !second.DateOfBirth.Equal(*first.DateOfBirth) {
		t.Errorf("Expected stable date of birth, got %v then %v", first.DateOfBirth, second.DateOfBirth)
	}
}

func TestNormalizeStudentAbsentDateOfBirth(t *testing.T) {
	student, err := NormalizeStudent(RawStudent{FirstName: "Bob", LastName: "Lee"})
	if err != nil {
		t.Fatalf("Failed to normalize student: %v", err)
	}
	if student.DateOfBirth != nil {
		t.Errorf("Expected absent date of birth to stay absent, got %v", student.DateOfBirth)
	}
	if !student.ID.IsZero() {
		t.Errorf("Expected absent id to stay zero, got %s", student.ID.Hex())
	}
}

func TestNormalizeStudentFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawStudent
		wantErr error
	}{
		{
			name:    "malformed student id",
			raw:     RawStudent{ID: "not-an-object-id", FirstName: "Ann"},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name:    "malformed date of birth",
			raw:     RawStudent{FirstName: "Ann", DateOfBirth: "14/03/2008"},
			wantErr: ErrInvalidDate,
		},
		{
			name: "malformed enrollment class id",
			raw: RawStudent{
				FirstName:   "Ann",
				Enrollments: []RawEnrollment{{ClassID: "nope", EnrolledAt: "2024-09-01"}},
			},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name: "missing enrollment date",
			raw: RawStudent{
				FirstName:   "Ann",
				Enrollments: []RawEnrollment{{ClassID: "507f191e810c19729de860ea"}},
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "second enrollment malformed aborts whole normalization",
			raw: RawStudent{
				FirstName: "Ann",
				Enrollments: []RawEnrollment{
					{ClassID: "507f191e810c19729de860ea", EnrolledAt: "2024-09-01"},
					{ClassID: "507f191e810c19729de860eb", EnrolledAt: "soon"},
				},
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student, err := NormalizeStudent(tt.raw)
			if err == nil {
				t.Fatal("Expected normalization to fail")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if student.FirstName != "" || len(student.Enrollments) != 0 {
				t.Errorf("Expected no partial record on failure, got %+v", student)
			}
		})
	}
}
