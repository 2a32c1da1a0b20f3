// Package stats provides timing and count tracking for test gathering runs.
// It captures how long each phase took, how much the walk yielded, and
// memory usage at the end of the run.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Stats holds performance metrics for a gathering run.
type Stats struct {
	// Timing for each phase
	LoadStart   time.Time
	LoadEnd     time.Time
	GatherStart time.Time
	GatherEnd   time.Time
	WriteStart  time.Time
	WriteEnd    time.Time

	// Counts
	Selectors  int
	Candidates int
	TestsFound int
	Rejected   int

	// Memory stats (captured at end)
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	NumGoroutine int
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartLoad marks the beginning of config loading.
func (s *Stats) StartLoad() {
	s.LoadStart = time.Now()
}

// EndLoad marks the end of config loading.
func (s *Stats) EndLoad() {
	s.LoadEnd = time.Now()
}

// StartGather marks the beginning of test gathering.
func (s *Stats) StartGather(selectors int) {
	s.GatherStart = time.Now()
	s.Selectors = selectors
}

// EndGather marks the end of test gathering.
func (s *Stats) EndGather(candidates, testsFound, rejected int) {
	s.GatherEnd = time.Now()
	s.Candidates = candidates
	s.TestsFound = testsFound
	s.Rejected = rejected
}

// StartWrite marks the beginning of report output.
func (s *Stats) StartWrite() {
	s.WriteStart = time.Now()
}

// EndWrite marks the end of report output and captures memory stats.
func (s *Stats) EndWrite() {
	s.WriteEnd = time.Now()
	s.captureMemoryStats()
}

// captureMemoryStats reads current memory statistics from runtime.
func (s *Stats) captureMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
	s.NumGoroutine = runtime.NumGoroutine()
}

// LoadDuration returns the time spent loading configuration.
func (s *Stats) LoadDuration() time.Duration {
	if s.LoadEnd.IsZero() {
		return 0
	}
	return s.LoadEnd.Sub(s.LoadStart)
}

// GatherDuration returns the time spent gathering tests.
func (s *Stats) GatherDuration() time.Duration {
	if s.GatherEnd.IsZero() {
		return 0
	}
	return s.GatherEnd.Sub(s.GatherStart)
}

// WriteDuration returns the time spent writing the report.
func (s *Stats) WriteDuration() time.Duration {
	if s.WriteEnd.IsZero() {
		return 0
	}
	return s.WriteEnd.Sub(s.WriteStart)
}

// TotalDuration returns the total time from the first phase to the last.
func (s *Stats) TotalDuration() time.Duration {
	if s.WriteEnd.IsZero() {
		return 0
	}
	start := s.LoadStart
	if start.IsZero() {
		start = s.GatherStart
	}
	return s.WriteEnd.Sub(start)
}

// TestsPerSecond returns the gathering throughput.
func (s *Stats) TestsPerSecond() float64 {
	d := s.GatherDuration()
	if d == 0 || s.TestsFound == 0 {
		return 0
	}
	return float64(s.TestsFound) / d.Seconds()
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats bytes for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted string representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()
	phase := func(label string, d time.Duration) {
		fmt.Fprintf(&b, "  %-14s %8s", label+":", FormatDuration(d))
		if total > 0 {
			fmt.Fprintf(&b, "  (%4.1f%%)", float64(d)/float64(total)*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n=== Gathering Statistics ===\n\n")

	b.WriteString("Timing:\n")
	phase("Load config", s.LoadDuration())
	phase("Gather tests", s.GatherDuration())
	phase("Write report", s.WriteDuration())
	b.WriteString("  ─────────────────────────\n")
	fmt.Fprintf(&b, "  Total:         %8s\n", FormatDuration(total))

	b.WriteString("\nResults:\n")
	fmt.Fprintf(&b, "  Selectors:         %5d\n", s.Selectors)
	fmt.Fprintf(&b, "  Paths walked:      %5d\n", s.Candidates)
	fmt.Fprintf(&b, "  Tests found:       %5d\n", s.TestsFound)
	if s.Rejected > 0 {
		fmt.Fprintf(&b, "  Reftests skipped:  %5d\n", s.Rejected)
	}
	fmt.Fprintf(&b, "  Tests/second:  %9.1f\n", s.TestsPerSecond())

	b.WriteString("\nMemory:\n")
	fmt.Fprintf(&b, "  Heap in use:   %8s\n", FormatBytes(s.HeapAlloc))
	fmt.Fprintf(&b, "  Total alloc:   %8s\n", FormatBytes(s.TotalAlloc))
	fmt.Fprintf(&b, "  GC cycles:     %8d\n", s.NumGC)
	fmt.Fprintf(&b, "  Goroutines:    %8d\n", s.NumGoroutine)

	return b.String()
}

// ToJSON returns a map suitable for JSON serialization.
func (s *Stats) ToJSON() map[string]any {
	return map[string]any{
		"timing": map[string]any{
			"load_ms":   s.LoadDuration().Milliseconds(),
			"gather_ms": s.GatherDuration().Milliseconds(),
			"write_ms":  s.WriteDuration().Milliseconds(),
			"total_ms":  s.TotalDuration().Milliseconds(),
		},
		"results": map[string]any{
			"selectors":        s.Selectors,
			"paths_walked":     s.Candidates,
			"tests_found":      s.TestsFound,
			"reftests_skipped": s.Rejected,
			"tests_per_second": s.TestsPerSecond(),
		},
		"memory": map[string]any{
			"heap_bytes":  s.HeapAlloc,
			"total_bytes": s.TotalAlloc,
			"gc_cycles":   s.NumGC,
			"goroutines":  s.NumGoroutine,
		},
	}
}
