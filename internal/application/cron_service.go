package application

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/workwayco/workway-validate/internal/domain"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

// CronReport is the outcome of checking a single cron expression.
type CronReport struct {
	Expression   string      `json:"expression"`
	Valid        bool        `json:"valid"`
	Error        string      `json:"error,omitempty"`
	Next         []time.Time `json:"next,omitempty"`
	PreviewError string      `json:"preview_error,omitempty"`
}

// CronService checks cron expressions the way the validator does and, for
// valid ones, previews when they would fire.
type CronService struct {
	planner domain.SchedulePlanner
	logger  *zap.SugaredLogger
}

func NewCronService(planner domain.SchedulePlanner, logger *zap.SugaredLogger) *CronService {
	return &CronService{planner: planner, logger: logger}
}

// Check validates expr and previews up to n fire times after from.
// The validator accepts a few forms the scheduler cannot run, such as
// backwards ranges; those stay valid with a PreviewError.
func (s *CronService) Check(expr string, from time.Time, n int) CronReport {
	expr = strings.TrimSpace(expr)
	report := CronReport{Expression: expr}

	if problem := workflow.ExplainCron(expr); problem != "" {
		report.Error = problem
		return report
	}
	report.Valid = true

	next, err := s.planner.Next(expr, from, n)
	if err != nil {
		s.logger.Debugw("no schedule preview", "expr", expr, "err", err)
		report.PreviewError = err.Error()
		return report
	}
	report.Next = next
	return report
}
