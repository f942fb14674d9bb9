package workflow

import (
	"fmt"
	"regexp"
)

// All matchers are compiled once during package initialization and shared
// read-only by every Validate call. A pattern that fails to compile panics
// at startup.

// Quote helpers: workflow sources accept ', " and ` as string delimiters.
const (
	quote    = "['\"`]"
	notQuote = "[^'\"`]"
)

// Imports.
var (
	sdkImportRe       = regexp.MustCompile(`@workway/sdk`)
	aiUsageRe         = regexp.MustCompile(`createAIClient|AIModels|env\.AI|workers-ai`)
	workersAIImportRe = regexp.MustCompile(`@workway/sdk/workers-ai`)
)

// Workflow declaration.
var (
	defineWorkflowRe = regexp.MustCompile(`defineWorkflow\s*\(`)
	exportDefaultRe  = regexp.MustCompile(`export\s+default`)
	workflowNameRe   = regexp.MustCompile(`name:\s*` + quote + `(` + notQuote + `+)` + quote)
	workflowTypeRe   = regexp.MustCompile(`type:\s*` + quote + `(integration|ai-enhanced|ai-native)` + quote)
)

// Execute function. The body matcher isolates braces nested one level deep.
var (
	hasExecuteRe  = regexp.MustCompile(`execute\s*[:(]|async\s+execute`)
	hasRunRe      = regexp.MustCompile(`run\s*[:(]|async\s+run`)
	executeBodyRe = regexp.MustCompile(`(?s)execute\s*\([^)]*\)\s*\{([^}]+(?:\{[^}]*\}[^}]*)*)\}`)
)

// Integrations.
var (
	integrationsBlockRe    = regexp.MustCompile(`(?s)integrations:\s*\[([\s\S]*?)\]`)
	serviceNameRe          = regexp.MustCompile(`service:\s*` + quote + `(` + notQuote + `+)` + quote)
	shorthandIntegrationRe = regexp.MustCompile(quote + `([a-z-]+)` + quote)
)

// Trigger.
var (
	hasTriggerRe        = regexp.MustCompile(`trigger:\s*`)
	triggerCallRe       = regexp.MustCompile(`trigger:\s*(webhook|schedule|manual|poll)\s*\(`)
	triggerObjectTypeRe = regexp.MustCompile(`trigger:\s*\{\s*type:\s*` + quote + `(` + notQuote + `+)` + quote)
	webhookConfigRe     = regexp.MustCompile(`webhook\s*\(\s*\{([^}]+)\}`)
	scheduleExprRe      = regexp.MustCompile(`schedule\s*\(\s*` + quote + `(` + notQuote + `+)` + quote)
)

// Pricing.
var (
	hasPricingRe    = regexp.MustCompile(`pricing:\s*\{`)
	pricingModelRe  = regexp.MustCompile(`model:\s*` + quote + `(subscription|usage|one-time)` + quote)
	pricingPriceRe  = regexp.MustCompile(`price:\s*(\d+(?:\.\d+)?)`)
	hasExecutionsRe = regexp.MustCompile(`executions:\s*(\d+|'unlimited')`)
)

// AI usage. Workflows run on Workers AI only; any other provider name is flagged.
var (
	externalAIRe = regexp.MustCompile(`(?i)claude|gpt-4|openai|anthropic|gemini`)
	envAccessRe  = regexp.MustCompile(`env\s*[,})]|context\.env|\{ env \}`)
)

// Common mistakes.
var (
	consoleStatementRe = regexp.MustCompile(`console\.(log|error|warn)`)
	awaitInForLoopRe   = regexp.MustCompile(`(?s)for\s*\([^)]+\)\s*\{[^}]*await[^}]*\}`)
	awaitInWhileLoopRe = regexp.MustCompile(`(?s)while\s*\([^)]+\)\s*\{[^}]*await[^}]*\}`)
	emptyCatchRe       = regexp.MustCompile(`(?s)catch\s*\([^)]*\)\s*\{\s*\}`)
)

// Hardcoded secrets. Passwords of any length count; the other kinds need at
// least 20 characters to look like a real credential.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*` + quote + notQuote + `{20,}` + quote),
	regexp.MustCompile(`(?i)secret\s*[:=]\s*` + quote + notQuote + `{20,}` + quote),
	regexp.MustCompile(`(?i)password\s*[:=]\s*` + quote + notQuote + `+` + quote),
	regexp.MustCompile(`(?i)token\s*[:=]\s*` + quote + notQuote + `{20,}` + quote),
}

// Cron.
var (
	cronStepWildcardRe = regexp.MustCompile(`^\*/\d+$`)
	cronRangeListRe    = regexp.MustCompile(`^\d+(-\d+)?(,\d+(-\d+)?)*$`)
)

// cronField pairs the upper bound of a cron field with its fine-grained
// fallback pattern.
type cronField struct {
	name    string
	max     uint64
	pattern *regexp.Regexp
}

// cronFields is indexed by field position: minute, hour, day-of-month,
// month, day-of-week.
var cronFields = [5]cronField{
	{"minute", 59, regexp.MustCompile(`^(\*|[0-9]|[1-5][0-9])(\/(0|[1-9][0-9]?))?$|^\*/[0-9]+$`)},
	{"hour", 23, regexp.MustCompile(`^(\*|[0-9]|1[0-9]|2[0-3])(\/(0|[1-9][0-9]?))?$|^\*/[0-9]+$`)},
	{"day-of-month", 31, regexp.MustCompile(`^(\*|[1-9]|[12][0-9]|3[01])(\/(0|[1-9][0-9]?))?$|^\*/[0-9]+$`)},
	{"month", 12, regexp.MustCompile(`^(\*|[1-9]|1[0-2])(\/(0|[1-9][0-9]?))?$|^\*/[0-9]+$`)},
	{"day-of-week", 6, regexp.MustCompile(`^(\*|[0-6])(\/(0|[1-9][0-9]?))?$|^\*/[0-9]+$`)},
}

// BlockedNodeModules lists platform modules unavailable in Cloudflare Workers.
var BlockedNodeModules = []string{
	"fs", "path", "child_process", "os", "net", "http", "https",
	"stream", "buffer", "crypto", "util", "events", "cluster",
	"dns", "readline", "tty", "vm", "zlib", "worker_threads",
	"perf_hooks", "async_hooks",
}

// BlockedNPMPackages lists ecosystem packages known not to run in Workers.
var BlockedNPMPackages = []string{
	"axios", "request", "node-fetch", "express", "bcrypt",
	"sharp", "puppeteer", "mongoose", "pg", "mysql", "redis",
}

// KnownIntegrations lists the supported third-party service slugs.
var KnownIntegrations = []string{
	"gmail", "slack", "notion", "stripe", "github", "salesforce",
	"airtable", "zendesk", "hubspot", "linear", "discord", "telegram",
	"sendgrid", "resend", "mailchimp", "paypal", "square", "pipedrive",
	"gitlab", "google-workspace", "google-calendar", "google-drive",
	"google-sheets",
}

var knownIntegrationSet = func() map[string]bool {
	m := make(map[string]bool, len(KnownIntegrations))
	for _, name := range KnownIntegrations {
		m[name] = true
	}
	return m
}()

// IsKnownIntegration reports whether name is a supported integration slug.
func IsKnownIntegration(name string) bool {
	return knownIntegrationSet[name]
}

// BlockedModulePattern builds a matcher for an import-from or require() of
// exactly the given module. The name is escaped, never interpreted.
func BlockedModulePattern(module string) *regexp.Regexp {
	name := regexp.QuoteMeta(module)
	return regexp.MustCompile(fmt.Sprintf(
		`(import\s+.*from\s+%[1]s%[2]s%[1]s)|(require\s*\(\s*%[1]s%[2]s%[1]s\s*\))`,
		quote, name,
	))
}

// blockedModuleRes and blockedPackageRes hold one prebuilt matcher per list
// entry so the imports check never compiles patterns per call.
var (
	blockedModuleRes  = compileBlocked(BlockedNodeModules)
	blockedPackageRes = compileBlocked(BlockedNPMPackages)
)

func compileBlocked(names []string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(names))
	for _, n := range names {
		m[n] = BlockedModulePattern(n)
	}
	return m
}
