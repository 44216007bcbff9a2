// Package icron inspects cron expressions for status reporting.
package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// TriggerInfo describes where a cron schedule sits relative to a
// reference time.
type TriggerInfo struct {
	Next       time.Time
	Last       time.Time
	Expression string

	TimeSinceLast time.Duration
	TimeUntilNext time.Duration
}

// GetTriggerInfo computes the previous and next trigger times of cronExpr
// around refTime. Five and six field expressions and descriptors
// (@daily, @every ...) are accepted. The previous trigger is searched at
// hourly resolution up to a year back; Last stays zero when none lands in
// that window.
func GetTriggerInfo(cronExpr string, refTime time.Time) (*TriggerInfo, error) {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour |
		cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	info := &TriggerInfo{
		Expression: cronExpr,
		Next:       schedule.Next(refTime),
	}
	info.TimeUntilNext = info.Next.Sub(refTime)

	searchStart := refTime.Add(-time.Minute)
	for hours := 0; hours < 366*24; hours++ {
		candidate := schedule.Next(searchStart.Add(-time.Duration(hours) * time.Hour))
		if !candidate.After(refTime) {
			info.Last = candidate
			info.TimeSinceLast = refTime.Sub(candidate)
			break
		}
	}

	return info, nil
}
