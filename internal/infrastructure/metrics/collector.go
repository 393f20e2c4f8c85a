package metrics

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/asakaida/annostore/internal/repositories"
)

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// API metrics
	apiRequests sync.Map // map[string]*uint64 - route -> count
	apiErrors   sync.Map // map[string]*uint64 - route -> error count
	apiDuration sync.Map // map[string]*durationValue - route -> total duration in seconds

	// Store reference (optional, for querying entity counts)
	store repositories.StatsReader
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// StoreMetrics holds entity counts of the store.
type StoreMetrics struct {
	Targets     int64 `json:"targets"`
	Annotations int64 `json:"annotations"`
}

// APIMetrics holds API request metrics.
type APIMetrics struct {
	RequestCounts        map[string]uint64  `json:"request_counts"`
	ErrorCounts          map[string]uint64  `json:"error_counts"`
	TotalDurationSeconds map[string]float64 `json:"total_duration_seconds"`
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetStore sets the store instance for collecting entity counts.
func (c *Collector) SetStore(store repositories.StatsReader) {
	c.store = store
}

// RecordRequest records an API request.
func (c *Collector) RecordRequest(route string) {
	counter := c.getOrCreateCounter(&c.apiRequests, route)
	atomic.AddUint64(counter, 1)
}

// RecordError records an API error.
func (c *Collector) RecordError(route string) {
	counter := c.getOrCreateCounter(&c.apiErrors, route)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of an API call in seconds.
func (c *Collector) RecordDuration(route string, durationSeconds float64) {
	val, _ := c.apiDuration.LoadOrStore(route, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// GetStoreMetrics returns current store metrics.
func (c *Collector) GetStoreMetrics(ctx context.Context) *StoreMetrics {
	if c.store == nil {
		return &StoreMetrics{}
	}

	stats := c.store.Stats(ctx)
	return &StoreMetrics{
		Targets:     int64(stats.Targets),
		Annotations: int64(stats.Annotations),
	}
}

// GetAPIMetrics returns current API metrics.
func (c *Collector) GetAPIMetrics() *APIMetrics {
	result := &APIMetrics{
		RequestCounts:        make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	c.apiRequests.Range(func(key, value any) bool {
		result.RequestCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.apiErrors.Range(func(key, value any) bool {
		result.ErrorCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.apiDuration.Range(func(key, value any) bool {
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[key.(string)] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
