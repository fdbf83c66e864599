package guardrails

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// recentBlockCap bounds the rejection log kept for reporting.
const recentBlockCap = 10

// BlockRecord captures one rejected query for the safety report. The stored
// query text is truncated, never the full input.
type BlockRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Category  Category  `json:"category"`
	Reason    string    `json:"reason"`
}

// Metrics accumulates safety counters for the lifetime of one gate instance.
// All methods are safe for concurrent use; increments are never lost, though
// ordering between concurrent requests is unspecified.
type Metrics struct {
	mu       sync.Mutex
	total    int
	safe     int
	blocked  int
	warnings int
	byCat    map[Category]int
	recent   []BlockRecord
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TotalQueries   int                `json:"total_queries"`
	SafeQueries    int                `json:"safe_queries"`
	BlockedQueries int                `json:"blocked_queries"`
	WarningQueries int                `json:"warning_queries"`
	SafePercent    float64            `json:"safe_percentage"`
	BlockedPercent float64            `json:"blocked_percentage"`
	Categories     map[Category]int   `json:"category_breakdown"`
	RecentBlocks   []BlockRecord      `json:"recent_blocks"`
}

// NewMetrics creates an empty metrics accumulator.
func NewMetrics() *Metrics {
	return &Metrics{byCat: make(map[Category]int)}
}

func (m *Metrics) recordQuery() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
}

func (m *Metrics) recordSafe() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.safe++
}

func (m *Metrics) recordWarning() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings++
}

func (m *Metrics) recordBlocked(category Category, query, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked++
	m.byCat[category]++

	record := BlockRecord{
		Timestamp: time.Now(),
		Query:     truncate(query, 100),
		Category:  category,
		Reason:    reason,
	}
	m.recent = append(m.recent, record)
	if len(m.recent) > recentBlockCap {
		m.recent = m.recent[len(m.recent)-recentBlockCap:]
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		TotalQueries:   m.total,
		SafeQueries:    m.safe,
		BlockedQueries: m.blocked,
		WarningQueries: m.warnings,
		Categories:     make(map[Category]int, len(m.byCat)),
		RecentBlocks:   make([]BlockRecord, len(m.recent)),
	}
	for cat, count := range m.byCat {
		snap.Categories[cat] = count
	}
	copy(snap.RecentBlocks, m.recent)
	if m.total > 0 {
		snap.SafePercent = float64(m.safe) / float64(m.total) * 100
		snap.BlockedPercent = float64(m.blocked) / float64(m.total) * 100
	}
	return snap
}

// Report renders a human-readable safety report.
func (m *Metrics) Report() string {
	snap := m.Snapshot()

	var b strings.Builder
	b.WriteString("StudyMate Safety Report\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\nOverall statistics:\n")
	fmt.Fprintf(&b, "- Total queries: %d\n", snap.TotalQueries)
	fmt.Fprintf(&b, "- Safe queries: %d (%.1f%%)\n", snap.SafeQueries, snap.SafePercent)
	fmt.Fprintf(&b, "- Blocked queries: %d (%.1f%%)\n", snap.BlockedQueries, snap.BlockedPercent)
	fmt.Fprintf(&b, "- Warning queries: %d\n", snap.WarningQueries)

	if len(snap.Categories) > 0 {
		b.WriteString("\nCategory breakdown:\n")
		for cat, count := range snap.Categories {
			fmt.Fprintf(&b, "- %s: %d\n", cat, count)
		}
	}
	if len(snap.RecentBlocks) > 0 {
		b.WriteString("\nRecent blocks:\n")
		for _, block := range snap.RecentBlocks {
			fmt.Fprintf(&b, "- %s: %s - %s\n",
				block.Timestamp.Format(time.RFC3339), block.Category, block.Query)
		}
	}
	return strings.TrimSpace(b.String())
}

// Reset clears all counters and the rejection log.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = 0
	m.safe = 0
	m.blocked = 0
	m.warnings = 0
	m.byCat = make(map[Category]int)
	m.recent = nil
}

// truncate cuts the text near the byte limit without splitting a UTF-8 rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + "..."
}
