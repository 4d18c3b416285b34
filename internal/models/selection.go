package models

import (
	"errors"
	"net/url"
)

var ErrInvalidParameters = errors.New("invalid parameters provided")

var selectionParams = map[string]Category{
	"include_cpu":     CategoryCPU,
	"include_memory":  CategoryMemory,
	"include_disk":    CategoryDisk,
	"include_network": CategoryNetwork,
}

// MetricSelection records which categories a request asked for. The zero
// value selects nothing, which callers treat as "all categories".
type MetricSelection struct {
	CPU     bool
	Memory  bool
	Disk    bool
	Network bool
}

// ParseSelection builds a selection from query parameters. Any parameter name
// outside the include_* set rejects the whole query, whatever its value. A
// recognised parameter selects its category only when its value is non-empty.
func ParseSelection(query url.Values) (MetricSelection, error) {
	var sel MetricSelection
	for name := range query {
		if _, ok := selectionParams[name]; !ok {
			return MetricSelection{}, ErrInvalidParameters
		}
	}

	for name, category := range selectionParams {
		if query.Get(name) != "" {
			sel.set(category)
		}
	}
	return sel, nil
}

func (s *MetricSelection) set(c Category) {
	switch c {
	case CategoryCPU:
		s.CPU = true
	case CategoryMemory:
		s.Memory = true
	case CategoryDisk:
		s.Disk = true
	case CategoryNetwork:
		s.Network = true
	}
}

func (s MetricSelection) Has(c Category) bool {
	switch c {
	case CategoryCPU:
		return s.CPU
	case CategoryMemory:
		return s.Memory
	case CategoryDisk:
		return s.Disk
	case CategoryNetwork:
		return s.Network
	}
	return false
}

func (s MetricSelection) Empty() bool {
	return !s.CPU && !s.Memory && !s.Disk && !s.Network
}

// Categories returns the selected categories in response order.
func (s MetricSelection) Categories() []Category {
	var out []Category
	for _, c := range Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
