package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsResponseJSON(t *testing.T) {
	resp := StatsResponse{Stats: []*MetricRecord{
		NewCPURecord(50),
		NewMemoryRecord(MemoryStats{Total: 100, Available: 60, Percent: 40, Used: 40, Free: 60}),
		nil,
		NewDiskRecord(DiskStats{Path: "/", Total: 10, Used: 5, Free: 5, Percent: 50}),
		NewNetworkRecord(0.5),
	}}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"stats": [
		{"cpu": 50},
		{"memory": {"total": 100, "available": 60, "percent": 40, "used": 40, "free": 60}},
		null,
		{"disk": {"path": "/", "total": 10, "used": 5, "free": 5, "percent": 50}},
		{"network": 0.5}
	]}`, string(data))
}

func TestAggregateRecordJSON(t *testing.T) {
	resp := StatsResponse{Stats: []*MetricRecord{
		NewAggregateRecord([]*MetricRecord{
			NewCPURecord(50),
			nil,
			NewDiskRecord(DiskStats{Path: "/", Total: 10, Used: 5, Free: 5, Percent: 50}),
			NewNetworkRecord(0),
		}),
	}}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"stats": [[
		{"cpu": 50},
		null,
		{"disk": {"path": "/", "total": 10, "used": 5, "free": 5, "percent": 50}},
		{"network": 0}
	]]}`, string(data))
}

func TestHasReadings(t *testing.T) {
	var missing *MetricRecord

	assert.False(t, missing.HasReadings())
	assert.True(t, NewCPURecord(0).HasReadings())
	assert.True(t, NewAggregateRecord([]*MetricRecord{nil, NewNetworkRecord(0)}).HasReadings())
	assert.False(t, NewAggregateRecord([]*MetricRecord{nil, nil, nil, nil}).HasReadings())
	assert.False(t, NewAggregateRecord(nil).HasReadings())
}

func TestMetricRecordUnknownCategory(t *testing.T) {
	_, err := json.Marshal(MetricRecord{Category: "gpu"})
	assert.Error(t, err)
}

func TestErrorResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("Invalid parameters provided"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "error", "message": "Invalid parameters provided"}`, string(data))
}
