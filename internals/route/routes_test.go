package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easypeasy_backend/internals/databases/dbtest"
	helper "easypeasy_backend/internals/helpers"
	routes "easypeasy_backend/internals/route"
)

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

type labBody struct {
	LabID       string `json:"lab_id"`
	LabCode     string `json:"lab_code"`
	LabEndDate  string `json:"lab_end_date"`
	LabVersion  int    `json:"lab_version"`
	LabMeetings []struct {
		Order  int    `json:"lab_meeting_order"`
		Date   string `json:"lab_meeting_date"`
		Status string `json:"lab_meeting_status"`
	} `json:"lab_meetings"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	routes.SetupRoutes(app, dbtest.Open(t), nil)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func idOf(t *testing.T, env envelope, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	id, _ := m[field].(string)
	require.NotEmpty(t, id)
	return id
}

func seedCatalog(t *testing.T, app *fiber.App, meetings int) (venueID, labTypeID string) {
	t.Helper()
	code, env := call(t, app, http.MethodPost, "/api/venues", map[string]any{
		"venue_name": "Milano Centro",
		"venue_code": "milano",
		"venue_city": "Milano",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	venueID = idOf(t, env, "venue_id")

	code, env = call(t, app, http.MethodPost, "/api/lab-types", map[string]any{
		"lab_type_name":          "Robotica",
		"lab_type_code":          "robo",
		"lab_type_meeting_count": meetings,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	labTypeID = idOf(t, env, "lab_type_id")
	return venueID, labTypeID
}

func createLab(t *testing.T, app *fiber.App, venueID, labTypeID string) labBody {
	t.Helper()
	code, env := call(t, app, http.MethodPost, "/api/labs", map[string]any{
		"lab_venue_id":   venueID,
		"lab_type_id":    labTypeID,
		"lab_start_date": "2024-01-01",
		"lab_start_time": "16:30",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var lab labBody
	require.NoError(t, json.Unmarshal(env.Data, &lab))
	return lab
}

func meetingDates(lab labBody) []string {
	out := make([]string, 0, len(lab.LabMeetings))
	for _, m := range lab.LabMeetings {
		out = append(out, m.Date)
	}
	return out
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRouteKeepsErrorShape(t *testing.T) {
	app := newApp(t)
	code, env := call(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
	assert.False(t, env.Success)
}

func TestCatalogEndpoints(t *testing.T) {
	app := newApp(t)
	venueID, _ := seedCatalog(t, app, 4)

	code, env := call(t, app, http.MethodGet, "/api/venues/"+venueID, nil)
	require.Equal(t, http.StatusOK, code)
	var venue map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &venue))
	assert.Equal(t, "MILANO", venue["venue_code"])
	assert.Equal(t, "milano-centro", venue["venue_slug"])

	code, _ = call(t, app, http.MethodPost, "/api/venues", map[string]any{
		"venue_name": "Milano Due",
		"venue_code": "MILANO",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = call(t, app, http.MethodPost, "/api/lab-types", map[string]any{
		"lab_type_name":          "Broken",
		"lab_type_code":          "BRK",
		"lab_type_meeting_count": -1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "lab_type_meeting_count")

	code, _ = call(t, app, http.MethodGet, "/api/venues/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLabLifecycle(t *testing.T) {
	app := newApp(t)
	venueID, labTypeID := seedCatalog(t, app, 4)

	lab := createLab(t, app, venueID, labTypeID)
	assert.Equal(t, "MILA-LUN-1630", lab.LabCode)
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}, meetingDates(lab))
	assert.Equal(t, "2024-01-22", lab.LabEndDate)
	assert.Equal(t, 1, lab.LabVersion)

	base := "/api/labs/" + lab.LabID

	code, env := call(t, app, http.MethodPost, base+"/meetings/2/reschedule", map[string]any{
		"new_date": "2024-01-10",
		"version":  1,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var moved labBody
	require.NoError(t, json.Unmarshal(env.Data, &moved))
	assert.Equal(t, []string{"2024-01-01", "2024-01-10", "2024-01-17", "2024-01-24"}, meetingDates(moved))
	assert.Equal(t, "2024-01-24", moved.LabEndDate)
	assert.Equal(t, 2, moved.LabVersion)

	// stale version
	code, env = call(t, app, http.MethodPost, base+"/meetings/3/reschedule", map[string]any{
		"new_date": "2024-01-20",
		"version":  1,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.ErrorCode)

	code, _ = call(t, app, http.MethodPost, base+"/meetings/9/reschedule", map[string]any{"new_date": "2024-02-01"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, app, http.MethodPost, base+"/meetings/1/reschedule", map[string]any{"new_date": "2024-02-30"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = call(t, app, http.MethodPost, base+"/meetings/1/reschedule", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "new_date")

	code, env = call(t, app, http.MethodPatch, base+"/meetings/1", map[string]any{
		"status":         "done",
		"attended_count": 8,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = call(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code)
	var stored labBody
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.Equal(t, meetingDates(moved), meetingDates(stored))
	assert.Equal(t, "done", stored.LabMeetings[0].Status)

	code, env = call(t, app, http.MethodGet, "/api/labs?status=planned&venue_id="+venueID, nil)
	require.Equal(t, http.StatusOK, code)
	var list []labBody
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	code, _ = call(t, app, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, app, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateLabUnknownVenue(t *testing.T) {
	app := newApp(t)
	_, labTypeID := seedCatalog(t, app, 2)

	code, env := call(t, app, http.MethodPost, "/api/labs", map[string]any{
		"lab_venue_id":   "7f1d3c2e-0000-4000-8000-000000000001",
		"lab_type_id":    labTypeID,
		"lab_start_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestMalformedPathParamsAreBadRequests(t *testing.T) {
	app := newApp(t)
	venueID, labTypeID := seedCatalog(t, app, 4)
	lab := createLab(t, app, venueID, labTypeID)
	base := "/api/labs/" + lab.LabID

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"venue get", http.MethodGet, "/api/venues/not-a-uuid", nil},
		{"venue patch", http.MethodPatch, "/api/venues/not-a-uuid", map[string]any{"venue_city": "Roma"}},
		{"venue delete", http.MethodDelete, "/api/venues/not-a-uuid", nil},
		{"lab type get", http.MethodGet, "/api/lab-types/not-a-uuid", nil},
		{"lab type delete", http.MethodDelete, "/api/lab-types/not-a-uuid", nil},
		{"lab get", http.MethodGet, "/api/labs/not-a-uuid", nil},
		{"lab delete", http.MethodDelete, "/api/labs/not-a-uuid", nil},
		{"reschedule bad lab", http.MethodPost, "/api/labs/not-a-uuid/meetings/1/reschedule", map[string]any{"new_date": "2024-01-10"}},
		{"reschedule order zero", http.MethodPost, base + "/meetings/0/reschedule", map[string]any{"new_date": "2024-01-10"}},
		{"reschedule order negative", http.MethodPost, base + "/meetings/-2/reschedule", map[string]any{"new_date": "2024-01-10"}},
		{"reschedule order text", http.MethodPost, base + "/meetings/two/reschedule", map[string]any{"new_date": "2024-01-10"}},
		{"patch meeting order zero", http.MethodPatch, base + "/meetings/0", map[string]any{"status": "done"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := call(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, code, env.Message)
			assert.False(t, env.Success)
		})
	}

	// nothing above may have touched the stored lab
	code, env := call(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code)
	var stored labBody
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.Equal(t, meetingDates(lab), meetingDates(stored))
	assert.Equal(t, lab.LabVersion, stored.LabVersion)
	assert.Equal(t, "scheduled", stored.LabMeetings[0].Status)
}

func TestSchedulePreview(t *testing.T) {
	app := newApp(t)
	_, labTypeID := seedCatalog(t, app, 5)

	code, env := call(t, app, http.MethodPost, "/api/labs/schedule/preview", map[string]any{
		"start_date":    "2024-01-01",
		"meeting_count": 3,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var s struct {
		Meetings []struct {
			Order int    `json:"order"`
			Date  string `json:"date"`
		} `json:"meetings"`
		EndDate *string `json:"end_date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &s))
	require.Len(t, s.Meetings, 3)
	assert.Equal(t, "2024-01-15", s.Meetings[2].Date)
	require.NotNil(t, s.EndDate)
	assert.Equal(t, "2024-01-15", *s.EndDate)

	code, env = call(t, app, http.MethodPost, "/api/labs/schedule/preview", map[string]any{
		"start_date":  "2024-01-01",
		"lab_type_id": labTypeID,
	})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Len(t, s.Meetings, 5)

	code, env = call(t, app, http.MethodPost, "/api/labs/schedule/preview", map[string]any{
		"start_date":    "2024-01-01",
		"meeting_count": 0,
	})
	require.Equal(t, http.StatusOK, code)
	s.EndDate = nil
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Empty(t, s.Meetings)
	assert.Nil(t, s.EndDate)

	code, _ = call(t, app, http.MethodPost, "/api/labs/schedule/preview", map[string]any{"start_date": "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, code)
}
