package models

import (
	"encoding/json"
	"fmt"
)

// Category names one kind of host reading and is the JSON key it is reported under.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryMemory  Category = "memory"
	CategoryDisk    Category = "disk"
	CategoryNetwork Category = "network"

	// CategoryAll marks the record built from a full SampleAll pass.
	CategoryAll Category = "all"
)

// Categories lists every metric category in response order.
var Categories = []Category{CategoryCPU, CategoryMemory, CategoryDisk, CategoryNetwork}

type MemoryStats struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Percent   float64 `json:"percent"`
	Used      uint64  `json:"used"`
	Free      uint64  `json:"free"`
}

type DiskStats struct {
	Path    string  `json:"path"`
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// MetricRecord is a single reading for one category. Only the field matching
// Category is meaningful.
type MetricRecord struct {
	Category Category
	CPU      float64
	Memory   *MemoryStats
	Disk     *DiskStats
	Network  float64
	// Records holds every category of an aggregate, with nil for a failed one.
	Records []*MetricRecord
}

// NewCPURecord takes the utilisation percentage over one sampling window.
func NewCPURecord(percent float64) *MetricRecord {
	return &MetricRecord{Category: CategoryCPU, CPU: percent}
}

// NewMemoryRecord wraps a virtual memory snapshot.
func NewMemoryRecord(stats MemoryStats) *MetricRecord {
	return &MetricRecord{Category: CategoryMemory, Memory: &stats}
}

// NewDiskRecord wraps the usage of the configured mount point.
func NewDiskRecord(stats DiskStats) *MetricRecord {
	return &MetricRecord{Category: CategoryDisk, Disk: &stats}
}

// NewNetworkRecord takes the megabytes received during one sampling window.
func NewNetworkRecord(megabytes float64) *MetricRecord {
	return &MetricRecord{Category: CategoryNetwork, Network: megabytes}
}

// NewAggregateRecord groups the result of sampling every category. It is
// encoded as a JSON array in category order.
func NewAggregateRecord(records []*MetricRecord) *MetricRecord {
	return &MetricRecord{Category: CategoryAll, Records: records}
}

// HasReadings reports whether the record carries at least one sampled value.
func (r *MetricRecord) HasReadings() bool {
	if r == nil {
		return false
	}
	if r.Category != CategoryAll {
		return true
	}
	for _, record := range r.Records {
		if record != nil {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the record as a single-key object named after its
// category, or as an array for an aggregate.
func (r MetricRecord) MarshalJSON() ([]byte, error) {
	switch r.Category {
	case CategoryCPU:
		return json.Marshal(map[string]float64{"cpu": r.CPU})
	case CategoryMemory:
		return json.Marshal(map[string]*MemoryStats{"memory": r.Memory})
	case CategoryDisk:
		return json.Marshal(map[string]*DiskStats{"disk": r.Disk})
	case CategoryNetwork:
		return json.Marshal(map[string]float64{"network": r.Network})
	case CategoryAll:
		return json.Marshal(r.Records)
	default:
		return nil, fmt.Errorf("unknown metric category %q", r.Category)
	}
}
