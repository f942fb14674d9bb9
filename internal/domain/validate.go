package domain

import "fmt"

// ValidationError is a finding that blocks acceptance of a workflow.
type ValidationError struct {
	Type       Severity `json:"type"`
	Code       Code     `json:"code"`
	Message    string   `json:"message"`
	Line       *int     `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidationWarning is an advisory finding; it never affects validity.
type ValidationWarning struct {
	Type       Severity `json:"type"`
	Code       Code     `json:"code"`
	Message    string   `json:"message"`
	Line       *int     `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// NewError builds a ValidationError. It panics if code is not an error code,
// which would be a defect in the check catalog rather than an input condition.
func NewError(code Code, message string) ValidationError {
	mustSeverity(code, SeverityError)
	return ValidationError{Type: SeverityError, Code: code, Message: message}
}

// NewWarning builds a ValidationWarning. It panics if code is not a warning code.
func NewWarning(code Code, message string) ValidationWarning {
	mustSeverity(code, SeverityWarning)
	return ValidationWarning{Type: SeverityWarning, Code: code, Message: message}
}

func mustSeverity(code Code, want Severity) {
	got, ok := SeverityOf(code)
	if !ok {
		panic(fmt.Sprintf("unknown validation code %q", code))
	}
	if got != want {
		panic(fmt.Sprintf("validation code %q is a %s, not a %s", code, got, want))
	}
}

// WithSuggestion returns a copy of e carrying the given remediation text.
func (e ValidationError) WithSuggestion(s string) ValidationError {
	e.Suggestion = s
	return e
}

// WithSuggestion returns a copy of w carrying the given remediation text.
func (w ValidationWarning) WithSuggestion(s string) ValidationWarning {
	w.Suggestion = s
	return w
}

// PricingMetadata holds the pricing terms scraped from a workflow.
type PricingMetadata struct {
	Model string   `json:"model,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// WorkflowMetadata holds best-effort facts scraped from a workflow definition.
// It is populated even when validation fails.
type WorkflowMetadata struct {
	Name         string           `json:"name,omitempty"`
	Type         string           `json:"type,omitempty"`
	Integrations []string         `json:"integrations,omitempty"`
	Trigger      string           `json:"trigger,omitempty"`
	HasAI        *bool            `json:"hasAi,omitempty"`
	Pricing      *PricingMetadata `json:"pricing,omitempty"`
}

// ValidationResult is the outcome of validating a single workflow text.
// Valid is always equal to len(Errors) == 0.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
	Metadata WorkflowMetadata    `json:"metadata"`
}

// HasCode reports whether the result contains a finding with the given code.
func (r ValidationResult) HasCode(code Code) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// WithoutWarnings returns a copy of r with warnings whose code is in ignore
// removed. Errors are never filtered, so validity is unchanged.
func (r ValidationResult) WithoutWarnings(ignore []Code) ValidationResult {
	if len(ignore) == 0 {
		return r
	}
	skip := make(map[Code]bool, len(ignore))
	for _, c := range ignore {
		skip[c] = true
	}
	kept := make([]ValidationWarning, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		if !skip[w.Code] {
			kept = append(kept, w)
		}
	}
	r.Warnings = kept
	return r
}
