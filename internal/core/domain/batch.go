package domain

import "sync"

// BatchEntry is one processed work unit's outcome.
// Exactly one of Path, Error or Reason is meaningful, depending on
// which result list the entry lives in.
type BatchEntry struct {
	ItemID string
	Name   string

	// Path is the export location (successes).
	Path string
	// Kind is the item kind (successes).
	Kind ItemKind
	// Error is the failure text (failures).
	Error string
	// Reason explains the skip (skipped).
	Reason string
}

// BatchResult aggregates the outcomes of a batch export.
// Every processed unit appears in exactly one list and
// TotalProcessed equals the sum of the list lengths.
type BatchResult struct {
	RunID          string
	TotalProcessed int
	Successes      []BatchEntry
	Failures       []BatchEntry
	Skipped        []BatchEntry
}

// BatchCollector is a thread-safe accumulator for batch outcomes.
// Workers append concurrently; Result seals the totals.
type BatchCollector struct {
	mu        sync.Mutex
	successes []BatchEntry
	failures  []BatchEntry
	skipped   []BatchEntry
}

// Success records a successful export.
func (c *BatchCollector) Success(e BatchEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successes = append(c.successes, e)
}

// Failure records a failed unit.
func (c *BatchCollector) Failure(e BatchEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, e)
}

// Skip records a skipped unit.
func (c *BatchCollector) Skip(e BatchEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped = append(c.skipped, e)
}

// Result builds the final BatchResult.
func (c *BatchCollector) Result(runID string) *BatchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &BatchResult{
		RunID:          runID,
		TotalProcessed: len(c.successes) + len(c.failures) + len(c.skipped),
		Successes:      c.successes,
		Failures:       c.failures,
		Skipped:        c.skipped,
	}
}
