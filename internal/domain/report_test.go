package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workwayco/workway-validate/internal/domain"
)

func TestStatusFor(t *testing.T) {
	valid := &domain.ValidationResult{Valid: true}
	warned := &domain.ValidationResult{Valid: true, Warnings: []domain.ValidationWarning{
		domain.NewWarning(domain.CodeMissingPricing, "x"),
	}}
	invalid := &domain.ValidationResult{Valid: false}

	assert.Equal(t, domain.StatusPass, domain.StatusFor(valid, false))
	assert.Equal(t, domain.StatusWarn, domain.StatusFor(warned, false))
	assert.Equal(t, domain.StatusFail, domain.StatusFor(warned, true))
	assert.Equal(t, domain.StatusFail, domain.StatusFor(invalid, false))
	assert.Equal(t, domain.StatusFail, domain.StatusFor(nil, false), "unreadable sources fail")
}

func TestBatchReport_Summarize(t *testing.T) {
	r := sampleResult()
	b := &domain.BatchReport{Files: []domain.FileReport{
		{Path: "a.ts", Status: domain.StatusPass, Result: &domain.ValidationResult{Valid: true}},
		{Path: "b.ts", Status: domain.StatusWarn, Result: &domain.ValidationResult{Valid: true, Warnings: r.Warnings}},
	}}
	b.Summarize()
	assert.Equal(t, domain.StatusWarn, b.Status)
	assert.Equal(t, 0, b.ErrorCount)
	assert.Equal(t, 2, b.WarningCount)

	b.Files = append(b.Files, domain.FileReport{Path: "c.ts", Status: domain.StatusFail, Result: &r})
	b.Summarize()
	assert.Equal(t, domain.StatusFail, b.Status)
	assert.Equal(t, 1, b.ErrorCount)
	assert.Equal(t, 4, b.WarningCount)
}

func TestBatchReport_EmptyPasses(t *testing.T) {
	b := &domain.BatchReport{}
	b.Summarize()
	assert.Equal(t, domain.StatusPass, b.Status)
}
