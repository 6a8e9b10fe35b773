package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell reference: %v", err)
		}
		if err := workbook.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("Failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return buf
}

func TestImportWorkbook(t *testing.T) {
	roster, repo := newTestRoster()
	svc := NewImportService(roster, zap.NewNop())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth"},
		{"Anna", "Lee", "2008-03-14"},
		{"Bob", "Lee", ""},
		{"Ann", "Smith", "2007-11-02"},
	})

	result, err := svc.ImportWorkbook(context.Background(), buf)
	if err != nil {
		t.Fatalf("Failed to import workbook: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("Expected 3 imported students, got %d", result.Imported)
	}
	if result.BatchID == "" {
		t.Error("Expected a batch id")
	}

	stored, _ := repo.GetStudents(context.Background())
	if len(stored) != 3 {
		t.Errorf("Expected 3 persisted students, got %d", len(stored))
	}
	for _, student := range stored {
		if student.FirstName == "Bob" && student.DateOfBirth != nil {
			t.Error("Expected Bob's absent date of birth to stay absent")
		}
	}
}

func TestImportWorkbookMalformedDateAbortsImport(t *testing.T) {
	roster, repo := newTestRoster()
	svc := NewImportService(roster, zap.NewNop())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth"},
		{"Anna", "Lee", "2008-03-14"},
		{"Bob", "Lee", "not-a-date"},
	})

	_, err := svc.ImportWorkbook(context.Background(), buf)
	if !errors.Is(err, entities.ErrInvalidDate) {
		t.Fatalf("Expected ErrInvalidDate, got %v", err)
	}

	stored, _ := repo.GetStudents(context.Background())
	if len(stored) != 0 {
		t.Errorf("Expected nothing persisted on failed import, got %d", len(stored))
	}
}

func TestImportWorkbookHeaderValidation(t *testing.T) {
	roster, _ := newTestRoster()
	svc := NewImportService(roster, zap.NewNop())

	buf := buildWorkbook(t, [][]interface{}{
		{"given_name", "surname"},
		{"Anna", "Lee"},
	})

	_, err := svc.ImportWorkbook(context.Background(), buf)
	if err == nil || !strings.Contains(err.Error(), "header") {
		t.Fatalf("Expected header error, got %v", err)
	}
}

func TestImportWorkbookSkipsTrailingBlankRows(t *testing.T) {
	roster, _ := newTestRoster()
	svc := NewImportService(roster, zap.NewNop())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth"},
		{"Anna", "Lee", ""},
		{"", "", ""},
	})

	result, err := svc.ImportWorkbook(context.Background(), buf)
	if err != nil {
		t.Fatalf("Failed to import workbook: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Expected 1 imported student, got %d", result.Imported)
	}
}
