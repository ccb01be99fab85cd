// Package store persists a ledger of classification runs in SQLite.
package store

import "time"

// RunStatus tracks the lifecycle of one pipeline run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded classification run.
type Run struct {
	ID         string
	Crop       string
	OutputDir  string
	Status     RunStatus
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
	DurationMs int
	Layers     []LayerStat
}

// LayerStat summarizes one classified factor layer: where it was written and
// how its cells scored.
type LayerStat struct {
	Factor          string
	OutputPath      string
	SuitableCells   int
	ModerateCells   int
	UnsuitableCells int
}

// TotalCells returns the number of cells in the layer.
func (s LayerStat) TotalCells() int {
	return s.SuitableCells + s.ModerateCells + s.UnsuitableCells
}
