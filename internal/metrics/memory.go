package metrics

import (
	"runtime"

	"github.com/agbru/bigcalc/bigint"
)

// MemorySnapshot holds a point-in-time reading of the Go heap.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use
	Sys         uint64 // bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // live heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// GCSince reports the number of collections between before and s.
func (s MemorySnapshot) GCSince(before MemorySnapshot) uint32 {
	return s.NumGC - before.NumGC
}

// HeapWords expresses HeapAlloc in big integer words, which is the unit of
// the --max-words limit.
func (s MemorySnapshot) HeapWords() uint64 {
	return s.HeapAlloc / (bigint.WordBits / 8)
}
