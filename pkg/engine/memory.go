package engine

import "runtime"

// heapKB returns the current heap allocation in KB. Go does not expose
// per-goroutine memory, so in-process engines report the process heap
// observed around their own solves as a peak-memory watermark.
func heapKB() float64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return float64(stats.HeapAlloc) / 1024
}
