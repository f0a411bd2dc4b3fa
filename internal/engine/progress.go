package engine

import (
	"sync"
	"time"
)

// Monitor tracks the progress of an in-flight scenario calculation.
// It provides thread-safe snapshots for UI updates and logging while
// worker goroutines complete (year, vehicle type) cells.
type Monitor struct {
	mu sync.RWMutex

	totalCells     int
	processedCells int
	yearsCompleted []int
	startTime      time.Time
	lastUpdateTime time.Time
}

// NewMonitor creates a progress monitor for a calculation covering the
// given number of cells.
func NewMonitor(totalCells int) *Monitor {
	now := time.Now()
	return &Monitor{
		totalCells:     totalCells,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// YearCompleted records that all cells of one analysis year finished.
func (m *Monitor) YearCompleted(year, cells int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processedCells += cells
	m.yearsCompleted = append(m.yearsCompleted, year)
	m.lastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (m *Monitor) PercentComplete() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.percentCompleteLocked()
}

func (m *Monitor) percentCompleteLocked() float64 {
	if m.totalCells == 0 {
		return 0
	}
	return float64(m.processedCells) / float64(m.totalCells) * 100
}

// IsComplete returns true once every cell has been processed.
func (m *Monitor) IsComplete() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processedCells >= m.totalCells
}

// Snapshot returns an immutable copy of the current progress state.
func (m *Monitor) Snapshot() ProgressSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	years := make([]int, len(m.yearsCompleted))
	copy(years, m.yearsCompleted)
	return ProgressSnapshot{
		TotalCells:      m.totalCells,
		ProcessedCells:  m.processedCells,
		YearsCompleted:  years,
		PercentComplete: m.percentCompleteLocked(),
		StartTime:       m.startTime,
		LastUpdateTime:  m.lastUpdateTime,
		ElapsedTime:     time.Since(m.startTime),
	}
}

// ProgressSnapshot is an immutable snapshot of calculation progress.
type ProgressSnapshot struct {
	TotalCells      int           `json:"total_cells"`
	ProcessedCells  int           `json:"processed_cells"`
	YearsCompleted  []int         `json:"years_completed"`
	PercentComplete float64       `json:"percent_complete"`
	StartTime       time.Time     `json:"start_time"`
	LastUpdateTime  time.Time     `json:"last_update_time"`
	ElapsedTime     time.Duration `json:"elapsed_time"`
}
