package health

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/theblitlabs/system-stats/pkg/logger"
)

// Status represents the health status of a component
type Status string

const (
	// StatusOK indicates the component is healthy
	StatusOK Status = "OK"
	// StatusError indicates the component is not functioning
	StatusError Status = "ERROR"
)

// ComponentHealth represents the health status of a system component
type ComponentHealth struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Message     string    `json:"message"`
	LastChecked time.Time `json:"last_checked"`
}

// MemoryReader is the part of the metric source the checker probes.
type MemoryReader interface {
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// HealthChecker periodically probes the OS metric source
type HealthChecker struct {
	components map[string]*ComponentHealth
	mu         sync.RWMutex
	checkFreq  time.Duration
	source     MemoryReader
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(checkFreq time.Duration, source MemoryReader) *HealthChecker {
	if checkFreq <= 0 {
		checkFreq = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &HealthChecker{
		components: make(map[string]*ComponentHealth),
		checkFreq:  checkFreq,
		source:     source,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins periodic health checks
func (hc *HealthChecker) Start() {
	log := logger.WithComponent("health_checker")
	log.Info().Dur("frequency", hc.checkFreq).Msg("Starting health checker")

	hc.CheckAll()

	ticker := time.NewTicker(hc.checkFreq)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hc.CheckAll()
			case <-hc.ctx.Done():
				log.Info().Msg("Health checker stopped")
				return
			}
		}
	}()
}

// Stop halts the health checker
func (hc *HealthChecker) Stop() {
	if hc.cancel != nil {
		hc.cancel()
	}
}

// CheckAll runs all health checks
func (hc *HealthChecker) CheckAll() {
	hc.CheckMetricsSource()
}

// CheckMetricsSource verifies the OS counters can still be read.
func (hc *HealthChecker) CheckMetricsSource() {
	log := logger.WithComponent("health_checker.metrics_source")

	health := &ComponentHealth{
		Name:        "metrics_source",
		LastChecked: time.Now(),
	}

	if hc.source == nil {
		health.Status = StatusError
		health.Message = "Metrics source not initialized"
		log.Error().Msg(health.Message)
	} else {
		ctx, cancel := context.WithTimeout(hc.ctx, 5*time.Second)
		defer cancel()

		vm, err := hc.source.VirtualMemory(ctx)
		if err != nil {
			health.Status = StatusError
			health.Message = "Metrics source not responding"
			log.Error().Err(err).Msg("Metrics source not responding")
		} else {
			health.Status = StatusOK
			health.Message = "Metrics source readable"
			log.Debug().Uint64("memory_total", vm.Total).Msg("Metrics source healthy")
		}
	}

	hc.mu.Lock()
	hc.components[health.Name] = health
	hc.mu.Unlock()
}

// GetAllHealth returns the health status of all components
func (hc *HealthChecker) GetAllHealth() map[string]*ComponentHealth {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	result := make(map[string]*ComponentHealth, len(hc.components))
	for k, v := range hc.components {
		componentCopy := *v
		result[k] = &componentCopy
	}

	return result
}

// Healthy reports whether every checked component is OK.
func (hc *HealthChecker) Healthy() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	for _, c := range hc.components {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}
