package server

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func stubHostProbes(t *testing.T, cpuFn func(time.Duration, bool) ([]float64, error), memFn func() (*mem.VirtualMemoryStat, error)) {
	t.Helper()
	origCPU, origMem := sampleCPU, readMemory
	sampleCPU, readMemory = cpuFn, memFn
	t.Cleanup(func() {
		sampleCPU, readMemory = origCPU, origMem
	})
}

func TestGetSystemStats(t *testing.T) {
	cpuOK := func(time.Duration, bool) ([]float64, error) { return []float64{42.5}, nil }
	cpuFail := func(time.Duration, bool) ([]float64, error) { return nil, errors.New("no /proc/stat") }
	memOK := func() (*mem.VirtualMemoryStat, error) { return &mem.VirtualMemoryStat{UsedPercent: 63.2}, nil }
	memFail := func() (*mem.VirtualMemoryStat, error) { return nil, errors.New("no /proc/meminfo") }

	tests := []struct {
		name    string
		cpuFn   func(time.Duration, bool) ([]float64, error)
		memFn   func() (*mem.VirtualMemoryStat, error)
		wantCPU float64
		wantMem float64
	}{
		{"both available", cpuOK, memOK, 42.5, 63.2},
		{"memory unavailable keeps cpu", cpuOK, memFail, 42.5, 0},
		{"cpu unavailable keeps memory", cpuFail, memOK, 0, 63.2},
		{"nothing available", cpuFail, memFail, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubHostProbes(t, tt.cpuFn, tt.memFn)
			h := NewSystemHandlers(zerolog.Nop(), nil)

			cpuPct, memPct := h.getSystemStats()
			assert.Equal(t, tt.wantCPU, cpuPct)
			assert.Equal(t, tt.wantMem, memPct)
		})
	}
}
