package models

import "context"

// Database interface defines operations for run history persistence
type Database interface {
	SaveRun(run *Run, verdict Verdict) error
	RecentRuns(limit int) ([]RunSummary, error)
	GetRun(id string) (*Run, error)
	GetTargetStats(days int) ([]TargetStats, error)
	Prune(keepDays int) error
	Close() error
}

// Prober runs the external probe facility against one address and
// returns its raw textual output
type Prober interface {
	Probe(ctx context.Context, address string) (string, error)
}

// Analyzer performs one complete probing pass
type Analyzer interface {
	Run(ctx context.Context) (*Run, error)
}
