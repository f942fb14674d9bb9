package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// IsValidCron reports whether expr is a five-field cron expression
// (minute hour day-of-month month day-of-week) whose fields are in range.
//
// Ranges are not checked for low <= high, and the step of a "*/N" field has
// no upper bound.
func IsValidCron(expr string) bool {
	return ExplainCron(expr) == ""
}

// ExplainCron returns why expr is not a valid cron expression, or "" if it
// is. Only the first failing field is reported.
func ExplainCron(expr string) string {
	parts := strings.Fields(expr)
	if len(parts) != len(cronFields) {
		return fmt.Sprintf("expected %d fields (minute hour day month weekday), got %d", len(cronFields), len(parts))
	}

	for i, part := range parts {
		f := cronFields[i]
		if !validCronField(part, f) {
			return fmt.Sprintf("%s field %q is invalid (max %d)", f.name, part, f.max)
		}
	}
	return ""
}

func validCronField(part string, f cronField) bool {
	switch {
	case part == "*":
		return true
	case cronStepWildcardRe.MatchString(part):
		return true
	case cronRangeListRe.MatchString(part):
		return rangeListWithin(part, f.max)
	default:
		return f.pattern.MatchString(part)
	}
}

// rangeListWithin checks every number of a "1,3-5,7" style field against limit.
func rangeListWithin(part string, limit uint64) bool {
	for _, segment := range strings.Split(part, ",") {
		for _, num := range strings.Split(segment, "-") {
			n, err := strconv.ParseUint(num, 10, 32)
			if err != nil || n > limit {
				return false
			}
		}
	}
	return true
}
