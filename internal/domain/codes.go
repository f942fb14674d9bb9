package domain

// Severity classifies a finding. A code always maps to exactly one severity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable machine-readable identifier for a finding.
// Collaborators branch on the code, never on message text.
type Code string

const (
	CodeMissingSDKImport       Code = "MISSING_SDK_IMPORT"
	CodeMissingAIImport        Code = "MISSING_AI_IMPORT"
	CodeBlockedNodeModule      Code = "BLOCKED_NODE_MODULE"
	CodeIncompatibleNPMPackage Code = "INCOMPATIBLE_NPM_PACKAGE"
	CodeNoWorkflowExport       Code = "NO_WORKFLOW_EXPORT"
	CodeMissingName            Code = "MISSING_NAME"
	CodeMissingExecute         Code = "MISSING_EXECUTE"
	CodeNoReturn               Code = "NO_RETURN"
	CodeUnknownIntegration     Code = "UNKNOWN_INTEGRATION"
	CodeMissingScopes          Code = "MISSING_SCOPES"
	CodeMissingTrigger         Code = "MISSING_TRIGGER"
	CodeIncompleteWebhook      Code = "INCOMPLETE_WEBHOOK"
	CodeInvalidCron            Code = "INVALID_CRON"
	CodeMissingPricing         Code = "MISSING_PRICING"
	CodeMissingExecutions      Code = "MISSING_EXECUTIONS"
	CodeExternalAIDetected     Code = "EXTERNAL_AI_DETECTED"
	CodeMissingEnvAccess       Code = "MISSING_ENV_ACCESS"
	CodeExcessiveLogging       Code = "EXCESSIVE_LOGGING"
	CodeHardcodedSecret        Code = "HARDCODED_SECRET"
	CodeAwaitInLoop            Code = "AWAIT_IN_LOOP"
	CodeEmptyCatch             Code = "EMPTY_CATCH"
)

// CodeInfo describes one entry of the code catalog.
type CodeInfo struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Group    string   `json:"group"`
}

// Catalog lists every code in check-group execution order.
var Catalog = []CodeInfo{
	{CodeMissingSDKImport, SeverityError, "imports"},
	{CodeMissingAIImport, SeverityWarning, "imports"},
	{CodeBlockedNodeModule, SeverityError, "imports"},
	{CodeIncompatibleNPMPackage, SeverityWarning, "imports"},
	{CodeNoWorkflowExport, SeverityError, "workflow"},
	{CodeMissingName, SeverityWarning, "workflow"},
	{CodeMissingExecute, SeverityError, "execute"},
	{CodeNoReturn, SeverityWarning, "execute"},
	{CodeUnknownIntegration, SeverityWarning, "integrations"},
	{CodeMissingScopes, SeverityWarning, "integrations"},
	{CodeMissingTrigger, SeverityError, "trigger"},
	{CodeIncompleteWebhook, SeverityWarning, "trigger"},
	{CodeInvalidCron, SeverityError, "trigger"},
	{CodeMissingPricing, SeverityWarning, "pricing"},
	{CodeMissingExecutions, SeverityWarning, "pricing"},
	{CodeExternalAIDetected, SeverityWarning, "ai"},
	{CodeMissingEnvAccess, SeverityWarning, "ai"},
	{CodeExcessiveLogging, SeverityWarning, "mistakes"},
	{CodeHardcodedSecret, SeverityError, "mistakes"},
	{CodeAwaitInLoop, SeverityWarning, "mistakes"},
	{CodeEmptyCatch, SeverityWarning, "mistakes"},
}

var codeSeverity = func() map[Code]Severity {
	m := make(map[Code]Severity, len(Catalog))
	for _, info := range Catalog {
		m[info.Code] = info.Severity
	}
	return m
}()

// SeverityOf returns the severity a code is registered with.
func SeverityOf(code Code) (Severity, bool) {
	s, ok := codeSeverity[code]
	return s, ok
}

// IsKnownCode reports whether code belongs to the catalog.
func IsKnownCode(code Code) bool {
	_, ok := codeSeverity[code]
	return ok
}
