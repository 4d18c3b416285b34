package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/system-stats/internal/mocks"
)

func TestCheckMetricsSource(t *testing.T) {
	t.Run("healthy source", func(t *testing.T) {
		src := new(mocks.MockSource)
		src.On("VirtualMemory", mock.Anything).Return(&mem.VirtualMemoryStat{Total: 1024}, nil)

		hc := NewHealthChecker(time.Minute, src)
		hc.CheckAll()

		component := hc.GetAllHealth()["metrics_source"]
		require.NotNil(t, component)
		assert.Equal(t, StatusOK, component.Status)
		assert.True(t, hc.Healthy())
	})

	t.Run("failing source", func(t *testing.T) {
		src := new(mocks.MockSource)
		src.On("VirtualMemory", mock.Anything).Return(nil, errors.New("open /proc/meminfo: no such file"))

		hc := NewHealthChecker(time.Minute, src)
		hc.CheckAll()

		component := hc.GetAllHealth()["metrics_source"]
		require.NotNil(t, component)
		assert.Equal(t, StatusError, component.Status)
		assert.NotContains(t, component.Message, "/proc/meminfo")
		assert.False(t, hc.Healthy())
	})

	t.Run("no source", func(t *testing.T) {
		hc := NewHealthChecker(time.Minute, nil)
		hc.CheckAll()
		assert.False(t, hc.Healthy())
	})
}

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	s.calls.Add(1)
	return &mem.VirtualMemoryStat{Total: 1}, nil
}

func TestHealthCheckerStartStop(t *testing.T) {
	src := &countingSource{}

	hc := NewHealthChecker(5*time.Millisecond, src)
	hc.Start()
	defer hc.Stop()

	assert.Eventually(t, func() bool {
		return src.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	assert.True(t, hc.Healthy())
}

func TestNewHealthCheckerNonPositiveFrequency(t *testing.T) {
	for _, freq := range []time.Duration{0, -time.Second} {
		hc := NewHealthChecker(freq, &countingSource{})
		assert.Equal(t, 30*time.Second, hc.checkFreq)

		assert.NotPanics(t, hc.Start)
		hc.Stop()
	}
}

func TestGetAllHealthReturnsCopies(t *testing.T) {
	src := new(mocks.MockSource)
	src.On("VirtualMemory", mock.Anything).Return(&mem.VirtualMemoryStat{Total: 1}, nil)

	hc := NewHealthChecker(time.Minute, src)
	hc.CheckAll()

	snapshot := hc.GetAllHealth()
	snapshot["metrics_source"].Status = StatusError
	assert.True(t, hc.Healthy())
}
