package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/database"
	"github.com/aristath/resourceplan/internal/di"
	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/aristath/resourceplan/internal/modules/roster"
)

func setupServer(t *testing.T) (*Server, *di.Container) {
	t.Helper()
	cfg := &config.Config{
		DataDir:                    t.TempDir(),
		DBDriver:                   database.DriverModernc,
		Port:                       8001,
		DevMode:                    true,
		CORSAllowedOrigins:         []string{"*"},
		DefaultWeeklyCapacityHours: 40,
		DefaultNonProjectHours:     8,
		Thresholds:                 capacity.DefaultThresholds(),
		CurrentDateAwareness:       capacity.AwarenessAuto,
	}
	log := zerolog.Nop()

	container, _, err := di.Wire(cfg, log, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return New(Config{Log: log, Config: cfg, Container: container}), container
}

func serve(s *Server, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := setupServer(t)

	w := serve(s, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
}

func TestServer_Alerts(t *testing.T) {
	s, container := setupServer(t)

	_, err := container.ResourceRepo.Upsert(roster.ResourceRecord{ID: "r1", Name: "Alice"})
	require.NoError(t, err)
	_, err = container.AllocationRepo.Upsert(roster.AllocationRecord{
		ID: "a1", ResourceID: "r1", ProjectID: "p1",
		WeeklyHours: map[string]float64{"2025-W10": 40},
	})
	require.NoError(t, err)

	w := serve(s, "/api/alerts?startDate=2025-03-03&endDate=2025-03-09")
	require.Equal(t, http.StatusOK, w.Code)

	var resp capacity.AlertsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.CriticalCount)

	w = serve(s, "/api/alerts/resource/r1/breakdown?startDate=2025-03-03&endDate=2025-03-09")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(s, "/api/alerts/resource/r9/breakdown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Settings(t *testing.T) {
	s, _ := setupServer(t)

	w := serve(s, "/api/settings")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_DatabaseStats(t *testing.T) {
	s, container := setupServer(t)

	_, err := container.ResourceRepo.Upsert(roster.ResourceRecord{ID: "r1", Name: "Alice"})
	require.NoError(t, err)

	w := serve(s, "/api/system/database/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats DatabaseStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "planning", stats.Name)
	assert.Equal(t, 1, stats.Resources)
	assert.Equal(t, 1, stats.ActiveCount)
	assert.Equal(t, 0, stats.Allocations)
	assert.Equal(t, database.DriverModernc, stats.Driver)
}

func TestServer_SystemStatus(t *testing.T) {
	s, _ := setupServer(t)

	w := serve(s, "/api/system/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Greater(t, status.Goroutines, 0)
}

func TestServer_UnknownRoute(t *testing.T) {
	s, _ := setupServer(t)

	w := serve(s, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
