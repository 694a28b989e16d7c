// file: internals/helpers/pg_error.go
package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MapPGError maps pgx / lib/pq errors to an HTTP status and message.
func MapPGError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "Data not found"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Duplicate data (unique violation)."
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return http.StatusBadRequest, "Referenced record not found (FK violation)."
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return mapPGCode(pgxErr.Code, pgxErr.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPGCode(string(pqErr.Code), pqErr.Message)
	}
	// sqlite (tests) reports constraint errors only as text
	if msg := strings.ToLower(err.Error()); strings.Contains(msg, "unique constraint") {
		return http.StatusConflict, "Duplicate data (unique violation)."
	}
	return http.StatusInternalServerError, err.Error()
}

func mapPGCode(code, msg string) (int, string) {
	switch code {
	case "23505":
		return http.StatusConflict, "Duplicate data (unique violation)."
	case "23503":
		return http.StatusBadRequest, "Referenced record not found (FK violation)."
	case "23514":
		return http.StatusBadRequest, "Value violates a check constraint."
	case "57014":
		return http.StatusServiceUnavailable, "Query timed out."
	default:
		return http.StatusInternalServerError, msg
	}
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	code, _ := MapPGError(err)
	return code == http.StatusConflict
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
