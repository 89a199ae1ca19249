package gpu

import (
	"fmt"
	"sync"
)

// MemoryStats describes how much of the VRAM budget a pool occupies.
type MemoryStats struct {
	// BudgetBytes is the requested budget in bytes.
	BudgetBytes uint64

	// UsedBytes is the memory held by allocated buffers.
	UsedBytes uint64

	// BufferBytes is the size of one buffer.
	BufferBytes uint64

	// BufferCount is the number of allocated buffers.
	BufferCount int

	// Utilization is UsedBytes / BudgetBytes (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d MB, %d buffers]",
		s.Utilization*100,
		s.UsedBytes/(1024*1024),
		s.BudgetBytes/(1024*1024),
		s.BufferCount)
}

// memoryTracker accounts for buffer allocations against a budget.
// It is safe for concurrent use.
type memoryTracker struct {
	mu          sync.Mutex
	budgetBytes uint64
	bufferBytes uint64
	count       int
}

func newMemoryTracker(budgetBytes, bufferBytes uint64) *memoryTracker {
	return &memoryTracker{budgetBytes: budgetBytes, bufferBytes: bufferBytes}
}

// alloc records one more buffer.
func (m *memoryTracker) alloc() {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
}

// reset forgets every buffer.
func (m *memoryTracker) reset() {
	m.mu.Lock()
	m.count = 0
	m.mu.Unlock()
}

func (m *memoryTracker) stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	//nolint:gosec // G115: count is never negative
	used := uint64(m.count) * m.bufferBytes
	s := MemoryStats{
		BudgetBytes: m.budgetBytes,
		UsedBytes:   used,
		BufferBytes: m.bufferBytes,
		BufferCount: m.count,
	}
	if m.budgetBytes > 0 {
		s.Utilization = float64(used) / float64(m.budgetBytes)
	}
	return s
}
