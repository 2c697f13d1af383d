package server

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/resourceplan/internal/database"
)

// SystemStatusResponse represents process and host status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// DatabaseStatsResponse represents planning database statistics
type DatabaseStatsResponse struct {
	Name          string `json:"name"`
	Driver        string `json:"driver"`
	SizeBytes     int64  `json:"size_bytes"`
	Resources     int    `json:"resources"`
	ActiveCount   int    `json:"active_resources"`
	Allocations   int    `json:"allocations"`
	SettingsCount int    `json:"settings"`
}

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	db        *database.DB
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, db *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		db:        db,
		startedAt: time.Now(),
	}
}

// Host probes, replaceable in tests
var (
	sampleCPU  = cpu.Percent
	readMemory = mem.VirtualMemory
)

// HandleSystemStatus returns CPU, memory and runtime figures
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Status:        "ok",
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	})
}

// HandleDatabaseStats returns row counts and file size of planning.db
// GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := DatabaseStatsResponse{
		Name:   h.db.Name(),
		Driver: h.db.Driver(),
	}

	if info, err := os.Stat(h.db.Path()); err == nil {
		stats.SizeBytes = info.Size()
	}

	counts := []struct {
		query  string
		target *int
	}{
		{"SELECT COUNT(*) FROM resources", &stats.Resources},
		{"SELECT COUNT(*) FROM resources WHERE active = 1", &stats.ActiveCount},
		{"SELECT COUNT(*) FROM allocations", &stats.Allocations},
		{"SELECT COUNT(*) FROM settings", &stats.SettingsCount},
	}
	for _, c := range counts {
		if err := h.db.Conn().QueryRow(c.query).Scan(c.target); err != nil {
			h.log.Error().Err(err).Str("query", c.query).Msg("Failed to count rows")
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read database statistics"})
			return
		}
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// getSystemStats returns average CPU and RAM usage percentages.
// Samples CPU over 100ms to keep the call short.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuAvg := 0.0
	samples, err := sampleCPU(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(samples) > 0 {
		cpuAvg = samples[0]
	}

	memStat, err := readMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg, 0
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
