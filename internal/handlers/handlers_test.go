package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"savvy/config"
	"savvy/internal/app"
	"savvy/internal/database"
	"savvy/internal/handlers/middleware"
	"savvy/internal/jobstore"
	"savvy/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	cleaners := []models.Cleaner{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Sarah Johnson", Phone: "555-0100", Email: "sarah@example.com", Available: true},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Mike Smith", Phone: "555-0200", Email: "mike@example.com", Available: false},
	}
	jobs := []models.Job{
		{BaseModel: models.BaseModel{ID: 1}, Location: "A", Room: "101", Date: "2024-01-01", StartTime: "09:00", GuestCount: 1},
		{BaseModel: models.BaseModel{ID: 2}, Location: "B", Room: "202", Date: "2024-01-01", StartTime: "10:00", GuestCount: 2},
		{BaseModel: models.BaseModel{ID: 3}, Location: "A", Room: "303", Date: "2024-01-02", StartTime: "11:00", GuestCount: 1, CleanerID: intPtr(2)},
	}

	store, err := jobstore.New(jobs, cleaners)
	require.NoError(t, err)

	cfg := config.Config{
		ServerPort:  8288,
		Environment: "test",
		SeedSource:  config.SeedSourceGenerator,
	}
	application, err := app.Assemble(context.Background(), cfg, database.DB{}, store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	server := fiber.New()
	require.NoError(t, Router(server, application))
	return server
}

func doRequest(t *testing.T, server *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Test(req)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "GET", "/api/health", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))
}

func TestListJobs(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  float64
	}{
		{name: "all jobs", target: "/api/jobs", wantStatus: fiber.StatusOK, wantCount: 3},
		{name: "by location", target: "/api/jobs?location=A", wantStatus: fiber.StatusOK, wantCount: 2},
		{name: "by search", target: "/api/jobs?search=303", wantStatus: fiber.StatusOK, wantCount: 1},
		{name: "unassigned", target: "/api/jobs?status=unassigned", wantStatus: fiber.StatusOK, wantCount: 2},
		{name: "by cleaner", target: "/api/jobs?cleanerId=2", wantStatus: fiber.StatusOK, wantCount: 1},
		{name: "unknown status", target: "/api/jobs?status=bogus", wantStatus: fiber.StatusBadRequest},
		{name: "bad cleaner id", target: "/api/jobs?cleanerId=abc", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, server, "GET", tt.target, "")

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantCount, body["count"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestGetJob(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "GET", "/api/jobs/3", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	job := body["job"].(map[string]any)
	assert.Equal(t, "Mike Smith", job["assigned"].(map[string]any)["name"])

	resp, _ = doRequest(t, server, "GET", "/api/jobs/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, server, "GET", "/api/jobs/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStatsAndLocations(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "GET", "/api/jobs/stats", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["total"])
	assert.Equal(t, float64(1), stats["assigned"])
	assert.Equal(t, float64(1), stats["availableCleaners"])

	resp, body = doRequest(t, server, "GET", "/api/jobs/locations", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"A", "B"}, body["locations"])
}

func TestToggleGuestStatus(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "PATCH", "/api/jobs/1/guests", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["job"].(map[string]any)["guestsOut"])

	resp, _ = doRequest(t, server, "PATCH", "/api/jobs/99/guests", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSelectionAndAssignment(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "PUT", "/api/selection/1", `{"selected":true}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, body = doRequest(t, server, "POST", "/api/assignments", `{"cleanerId":1}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["updatedCount"])
	assert.Equal(t, "Sarah Johnson", body["cleanerName"])

	resp, body = doRequest(t, server, "GET", "/api/selection", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	resp, body = doRequest(t, server, "GET", "/api/jobs?cleanerId=1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestAssignRejected(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "unavailable cleaner", body: `{"cleanerId":2,"jobIds":[1]}`},
		{name: "unknown cleaner", body: `{"cleanerId":9,"jobIds":[1]}`},
		{name: "nothing selected", body: `{"cleanerId":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, server, "POST", "/api/assignments", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}

	_, body := doRequest(t, server, "GET", "/api/jobs?status=assigned", "")
	assert.Equal(t, float64(1), body["count"])
}

func TestClearSelection(t *testing.T) {
	server := newTestServer(t)

	doRequest(t, server, "PUT", "/api/selection/1", `{"selected":true}`)
	doRequest(t, server, "PUT", "/api/selection/2", `{"selected":true}`)

	resp, body := doRequest(t, server, "DELETE", "/api/selection", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])
}

func TestScheduleNotification(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "PUT", "/api/jobs/3/schedule", `{"date":"2024-01-02","time":"08:30","type":"sms"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, "Mike Smith", body["cleanerName"])

	resp, _ = doRequest(t, server, "PUT", "/api/jobs/3/schedule", `{"date":"2024-01-02","time":"25:00","type":"sms"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, server, "PUT", "/api/jobs/3/schedule", `{"date":"2024-01-02","time":"08:30","type":"fax"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, server, "PUT", "/api/jobs/99/schedule", `{"date":"2024-01-02","time":"08:30","type":"sms"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, body = doRequest(t, server, "GET", "/api/jobs/stats", "")
	assert.Equal(t, float64(1), body["stats"].(map[string]any)["scheduled"])
}

func TestNotifyCleaner(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "POST", "/api/jobs/3/notify", `{"type":"sms"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mike Smith", body["cleanerName"])
	assert.Equal(t, "sms", body["channel"])

	resp, _ = doRequest(t, server, "POST", "/api/jobs/3/notify", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, server, "POST", "/api/jobs/1/notify", `{"type":"sms"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, server, "POST", "/api/jobs/3/notify", `{"type":"pigeon"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPrintJobs(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, "POST", "/api/jobs/print", `{"jobIds":[1,99]}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["printedCount"])
	assert.Equal(t, []any{float64(99)}, body["skippedIds"])
	require.Len(t, body["jobs"], 1)
	assert.Equal(t, "printed", body["jobs"].([]any)[0].(map[string]any)["status"])
}

func TestBulkMessage(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doRequest(t, server, "POST", "/api/notifications/bulk", `{"message":"Running late today"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	doRequest(t, server, "PUT", "/api/selection/1", `{"selected":true}`)
	doRequest(t, server, "PUT", "/api/selection/3", `{"selected":true}`)

	resp, body := doRequest(t, server, "POST", "/api/notifications/bulk", `{"message":"Running late today"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["recipientCount"])
	assert.Equal(t, []any{"Mike Smith"}, body["cleanerNames"])

	_, body = doRequest(t, server, "GET", "/api/selection", "")
	assert.Equal(t, float64(2), body["count"])
}

func TestCleaners(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  float64
	}{
		{name: "all", target: "/api/cleaners", wantStatus: fiber.StatusOK, wantCount: 2},
		{name: "available", target: "/api/cleaners?available=true", wantStatus: fiber.StatusOK, wantCount: 1},
		{name: "unavailable", target: "/api/cleaners?available=false", wantStatus: fiber.StatusOK, wantCount: 1},
		{name: "located", target: "/api/cleaners?located=true", wantStatus: fiber.StatusOK, wantCount: 0},
		{name: "bad filter", target: "/api/cleaners?available=maybe", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, server, "GET", tt.target, "")

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantCount, body["count"])
			}
		})
	}

	resp, body := doRequest(t, server, "GET", "/api/cleaners/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sarah Johnson", body["cleaner"].(map[string]any)["name"])

	resp, _ = doRequest(t, server, "GET", "/api/cleaners/9", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Test(httptest.NewRequest("GET", "/ws", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
