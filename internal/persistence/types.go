package persistence

import "time"

// Run records one completed translation run. Only fully successful runs
// are recorded; a failed run leaves no trace, matching the all-or-nothing
// output contract.
type Run struct {
	ID             int64
	InputPath      string
	OutputPath     string
	SourceLanguage string
	TargetLanguage string
	CueCount       int
	CharCount      int
	Duration       time.Duration
	CreatedAt      time.Time
}
