package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
)

// ImportResult summarizes a completed roster import.
type ImportResult struct {
	BatchID  string             `json:"batch_id"`
	Imported int                `json:"imported"`
	Students []entities.Student `json:"students"`
}

// ImportService reads student rosters from Excel workbooks and feeds
// them through the roster service. An import is all-or-nothing: one
// malformed row aborts the whole workbook.
type ImportService struct {
	roster *RosterService
	logger *zap.Logger
}

// NewImportService creates a new import service.
func NewImportService(roster *RosterService, logger *zap.Logger) *ImportService {
	return &ImportService{roster: roster, logger: logger}
}

// Header columns recognized on the first row of the roster sheet.
const (
	columnFirstName   = "first_name"
	columnLastName    = "last_name"
	columnDateOfBirth = "date_of_birth"
)

// ImportWorkbook parses the first sheet of an xlsx roster and registers
// every row as a student. The first row must be a header naming the
// columns; date_of_birth is optional per row.
func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader) (ImportResult, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return ImportResult{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return ImportResult{}, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return ImportResult{}, err
	}

	raws := make([]entities.RawStudent, 0, len(rows)-1)
	for i, row := range rows[1:] {
		raw := entities.RawStudent{
			FirstName:   cell(row, columns[columnFirstName]),
			LastName:    cell(row, columns[columnLastName]),
			DateOfBirth: cell(row, columns[columnDateOfBirth]),
		}
		if raw.FirstName == "" && raw.LastName == "" {
			continue // trailing blank rows are common in exported sheets
		}
		if raw.FirstName == "" || raw.LastName == "" {
			return ImportResult{}, fmt.Errorf("row %d: first and last name are required", i+2)
		}
		raws = append(raws, raw)
	}
	if len(raws) == 0 {
		return ImportResult{}, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	students, err := s.roster.RegisterStudents(ctx, raws)
	if err != nil {
		return ImportResult{}, err
	}

	batchID := uuid.New().String()
	s.logger.Info("Roster imported",
		zap.String("batch_id", batchID),
		zap.String("sheet", sheet),
		zap.Int("imported", len(students)))

	return ImportResult{
		BatchID:  batchID,
		Imported: len(students),
		Students: students,
	}, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := map[string]int{
		columnFirstName:   -1,
		columnLastName:    -1,
		columnDateOfBirth: -1,
	}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, known := columns[name]; known {
			columns[name] = i
		}
	}
	if columns[columnFirstName] < 0 || columns[columnLastName] < 0 {
		return nil, fmt.Errorf("header must name %s and %s columns", columnFirstName, columnLastName)
	}
	return columns, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
