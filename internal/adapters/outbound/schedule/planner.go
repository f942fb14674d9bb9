package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// MaxRuns caps how many fire times a single preview may request.
const MaxRuns = 50

// CronPlanner implements domain.SchedulePlanner with robfig/cron's
// standard five-field parser.
type CronPlanner struct{}

func New() *CronPlanner {
	return &CronPlanner{}
}

// Next returns the n fire times of expr strictly after from, in from's location.
func (p *CronPlanner) Next(expr string, from time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > MaxRuns {
		return nil, fmt.Errorf("at most %d runs can be previewed (got %d)", MaxRuns, n)
	}

	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", expr, err)
	}

	runs := make([]time.Time, 0, n)
	t := from
	for range n {
		t = sched.Next(t)
		if t.IsZero() {
			return runs, errors.New("schedule never fires")
		}
		runs = append(runs, t)
	}
	return runs, nil
}
