package extract

import "time"

// TargetStats summarizes one target's extraction sweep.
type TargetStats struct {
	Target    string        // Target name
	Sprites   int           // Metadata files considered
	Extracted int           // PNGs written
	Failed    int           // Sprites skipped due to decode/render errors
	Elapsed   time.Duration // Wall time for the whole target
}

// Stats aggregates a full batch run.
type Stats struct {
	Targets []TargetStats
}

// Add folds one target's stats into the batch totals.
func (s *Stats) Add(ts TargetStats) {
	s.Targets = append(s.Targets, ts)
}

// TotalExtracted returns the number of sprites written across all targets.
func (s *Stats) TotalExtracted() int {
	total := 0
	for _, ts := range s.Targets {
		total += ts.Extracted
	}
	return total
}

// TotalFailed returns the number of sprites skipped across all targets.
func (s *Stats) TotalFailed() int {
	total := 0
	for _, ts := range s.Targets {
		total += ts.Failed
	}
	return total
}
