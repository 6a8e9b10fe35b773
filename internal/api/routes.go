package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/schoolyard/roster/server/domain/entities"
	"github.com/schoolyard/roster/server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, roster *usecase.RosterService, importer *usecase.ImportService, logger *zap.Logger) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "roster-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.POST("/students", func(c echo.Context) error {
		return createStudents(c, roster, logger)
	})
	v1.GET("/students", func(c echo.Context) error {
		return listStudents(c, roster, logger)
	})
	v1.GET("/students/search", func(c echo.Context) error {
		return searchStudents(c, roster, logger)
	})
	v1.GET("/students/:id", func(c echo.Context) error {
		return getStudent(c, roster, logger)
	})
	v1.GET("/classes/:classId/students", func(c echo.Context) error {
		return classStudents(c, roster, logger)
	})
	v1.POST("/import/students", func(c echo.Context) error {
		return importStudents(c, importer, logger)
	})
}

// createStudents accepts either a single student object or an array of
// students in the request body and persists them as one batch.
func createStudents(c echo.Context, roster *usecase.RosterService, logger *zap.Logger) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to read request body",
		})
	}

	payloads, err := decodeStudentPayloads(body)
	if err != nil {
		logger.Warn("Failed to decode student payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Body must be a student object or an array of students",
		})
	}

	if len(payloads) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "empty_batch",
			Message: "At least one student is required",
		})
	}

	raws := make([]entities.RawStudent, len(payloads))
	for i, payload := range payloads {
		// Same rule as the workbook import: names are required.
		if payload.FirstName == "" || payload.LastName == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "missing_fields",
				Message: "First and last name are required",
			})
		}
		raws[i] = payload.toRaw()
	}

	created, err := roster.RegisterStudents(c.Request().Context(), raws)
	if err != nil {
		return writeDomainError(c, logger, "Failed to create students", err)
	}

	return c.JSON(http.StatusCreated, StudentsResponse{Students: created})
}

func listStudents(c echo.Context, roster *usecase.RosterService, logger *zap.Logger) error {
	students, err := roster.ListStudents(c.Request().Context())
	if err != nil {
		return writeDomainError(c, logger, "Failed to list students", err)
	}
	return c.JSON(http.StatusOK, StudentsResponse{Students: students})
}

func searchStudents(c echo.Context, roster *usecase.RosterService, logger *zap.Logger) error {
	students, err := roster.SearchStudents(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return writeDomainError(c, logger, "Failed to search students", err)
	}
	return c.JSON(http.StatusOK, StudentsResponse{Students: students})
}

func getStudent(c echo.Context, roster *usecase.RosterService, logger *zap.Logger) error {
	student, err := roster.FindStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, logger, "Failed to find student", err)
	}
	if student == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "student_not_found",
			Message: "No student with the given id",
		})
	}
	return c.JSON(http.StatusOK, student)
}

func classStudents(c echo.Context, roster *usecase.RosterService, logger *zap.Logger) error {
	students, err := roster.ClassMembers(c.Request().Context(), c.Param("classId"))
	if err != nil {
		return writeDomainError(c, logger, "Failed to list class students", err)
	}
	if students == nil {
		// The data layer does not distinguish a missing class from a
		// class with no members.
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "class_not_found_or_empty",
			Message: "No such class, or the class has no students",
		})
	}
	return c.JSON(http.StatusOK, StudentsResponse{Students: students})
}

func importStudents(c echo.Context, importer *usecase.ImportService, logger *zap.Logger) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_file",
			Message: "Multipart field 'file' with an xlsx workbook is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded workbook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "upload_failed",
			Message: "Failed to open uploaded file",
		})
	}
	defer file.Close()

	result, err := importer.ImportWorkbook(c.Request().Context(), file)
	if err != nil {
		return writeDomainError(c, logger, "Failed to import roster", err)
	}

	return c.JSON(http.StatusCreated, result)
}

func decodeStudentPayloads(body []byte) ([]StudentPayload, error) {
	var batch []StudentPayload
	if err := json.Unmarshal(body, &batch); err == nil {
		return batch, nil
	}

	var single StudentPayload
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []StudentPayload{single}, nil
}

// writeDomainError maps domain errors onto HTTP responses: malformed
// identifiers and dates are client errors, everything else is a store
// failure surfaced as-is.
func writeDomainError(c echo.Context, logger *zap.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidIdentifier):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_identifier",
			Message: err.Error(),
		})
	case errors.Is(err, entities.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_date",
			Message: err.Error(),
		})
	default:
		logger.Error(msg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "store_failure",
			Message: msg,
		})
	}
}
