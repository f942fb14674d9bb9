package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workwayco/workway-validate/internal/domain"
)

func TestCatalog_EachCodeHasOneSeverity(t *testing.T) {
	assert.Len(t, domain.Catalog, 21)

	seen := make(map[domain.Code]bool)
	for _, info := range domain.Catalog {
		assert.False(t, seen[info.Code], "duplicate code %s", info.Code)
		seen[info.Code] = true

		sev, ok := domain.SeverityOf(info.Code)
		assert.True(t, ok)
		assert.Equal(t, info.Severity, sev)
	}
}

func TestSeverityOf(t *testing.T) {
	sev, ok := domain.SeverityOf(domain.CodeHardcodedSecret)
	assert.True(t, ok)
	assert.Equal(t, domain.SeverityError, sev)

	sev, ok = domain.SeverityOf(domain.CodeMissingScopes)
	assert.True(t, ok)
	assert.Equal(t, domain.SeverityWarning, sev)

	_, ok = domain.SeverityOf("NOPE")
	assert.False(t, ok)
	assert.False(t, domain.IsKnownCode("NOPE"))
}

func TestNewError_RejectsWarningCode(t *testing.T) {
	assert.Panics(t, func() { domain.NewError(domain.CodeMissingPricing, "x") })
	assert.Panics(t, func() { domain.NewWarning(domain.CodeMissingTrigger, "x") })
	assert.Panics(t, func() { domain.NewWarning("UNKNOWN", "x") })
}

func TestNewError_SetsType(t *testing.T) {
	e := domain.NewError(domain.CodeMissingTrigger, "no trigger").WithSuggestion("add one")
	assert.Equal(t, domain.SeverityError, e.Type)
	assert.Equal(t, "add one", e.Suggestion)
	assert.Nil(t, e.Line)

	w := domain.NewWarning(domain.CodeMissingPricing, "no pricing")
	assert.Equal(t, domain.SeverityWarning, w.Type)
	assert.Empty(t, w.Suggestion)
}
