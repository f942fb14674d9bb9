package domain

// Report status values, shared by file and batch reports.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// FileReport is the validation outcome for one workflow source.
type FileReport struct {
	Path        string            `json:"path"`
	DisplayName string            `json:"display_name,omitempty"`
	Status      string            `json:"status"`
	Cached      bool              `json:"cached,omitempty"`
	ReadError   string            `json:"read_error,omitempty"`
	Result      *ValidationResult `json:"result,omitempty"`
}

// BatchReport aggregates the reports of one validation run.
type BatchReport struct {
	Status       string       `json:"status"`
	CommitHash   string       `json:"commit_hash,omitempty"`
	Files        []FileReport `json:"files"`
	ErrorCount   int          `json:"error_count"`
	WarningCount int          `json:"warning_count"`
}

// StatusFor derives a report status from a result. A nil result means the
// source could not be read and always fails.
func StatusFor(r *ValidationResult, strict bool) string {
	switch {
	case r == nil || !r.Valid:
		return StatusFail
	case len(r.Warnings) > 0 && strict:
		return StatusFail
	case len(r.Warnings) > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}

// Summarize fills in the counts and overall status from the file reports.
// The worst file status wins.
func (b *BatchReport) Summarize() {
	b.ErrorCount, b.WarningCount = 0, 0
	b.Status = StatusPass
	for _, f := range b.Files {
		if f.Result != nil {
			b.ErrorCount += len(f.Result.Errors)
			b.WarningCount += len(f.Result.Warnings)
		}
		switch f.Status {
		case StatusFail:
			b.Status = StatusFail
		case StatusWarn:
			if b.Status != StatusFail {
				b.Status = StatusWarn
			}
		}
	}
}
