package helper

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "milano-centro", Slugify("  Milano   Centro ", 0))
	assert.Equal(t, "caffe-ludoteca", Slugify("Caffè Ludoteca!", 0))
	assert.Equal(t, "item", Slugify("???", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestMapPGError(t *testing.T) {
	code, _ := MapPGError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = MapPGError(&pq.Error{Code: "23503"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = MapPGError(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = MapPGError(errors.New("UNIQUE constraint failed: venues.venue_code"))
	assert.Equal(t, http.StatusConflict, code)

	code, msg := MapPGError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", msg)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "lab_type_meeting_count", toSnake("LabTypeMeetingCount"))
	assert.Equal(t, "lab_type_id", toSnake("LabTypeID"))
	assert.Equal(t, "new_date", toSnake("NewDate"))
}
