// Package workflow validates WORKWAY workflow definitions by matching their
// raw source text against a fixed catalog of patterns. It does not parse the
// source: anything that is not a recognised construct is tolerated.
package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/workwayco/workway-validate/internal/domain"
)

// report accumulates findings and metadata for a single Validate call.
type report struct {
	errors   []domain.ValidationError
	warnings []domain.ValidationWarning
	meta     domain.WorkflowMetadata
}

func (r *report) fail(e domain.ValidationError)   { r.errors = append(r.errors, e) }
func (r *report) warn(w domain.ValidationWarning) { r.warnings = append(r.warnings, w) }

// Validate runs every check group against content, in a fixed order and
// without short-circuiting, and assembles the result. It never fails: each
// finding is an entry in the returned result, and metadata is extracted
// regardless of how many checks failed.
//
// Validate is pure and safe for concurrent use.
func Validate(content string) domain.ValidationResult {
	r := &report{
		errors:   []domain.ValidationError{},
		warnings: []domain.ValidationWarning{},
	}

	checkImports(content, r)
	checkWorkflowDefinition(content, r)
	checkExecuteFunction(content, r)
	checkIntegrations(content, r)
	checkTrigger(content, r)
	checkPricing(content, r)
	checkAIUsage(content, r)
	checkCommonMistakes(content, r)

	return domain.ValidationResult{
		Valid:    len(r.errors) == 0,
		Errors:   r.errors,
		Warnings: r.warnings,
		Metadata: r.meta,
	}
}

func checkImports(content string, r *report) {
	if !sdkImportRe.MatchString(content) {
		r.fail(domain.NewError(domain.CodeMissingSDKImport, "Workflow must import from @workway/sdk").
			WithSuggestion("Add: import { defineWorkflow } from '@workway/sdk'"))
	}

	hasAI := aiUsageRe.MatchString(content)
	if hasAI && !workersAIImportRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeMissingAIImport, "AI usage detected but no workers-ai import found").
			WithSuggestion("Add: import { createAIClient, AIModels } from '@workway/sdk/workers-ai'"))
	}
	r.meta.HasAI = &hasAI

	for _, module := range BlockedNodeModules {
		if blockedModuleRes[module].MatchString(content) {
			r.fail(domain.NewError(domain.CodeBlockedNodeModule,
				fmt.Sprintf("Node.js module '%s' is not available in Cloudflare Workers", module)).
				WithSuggestion(NodeModuleSuggestion(module)))
		}
	}

	for _, pkg := range BlockedNPMPackages {
		if blockedPackageRes[pkg].MatchString(content) {
			r.warn(domain.NewWarning(domain.CodeIncompatibleNPMPackage,
				fmt.Sprintf("npm package '%s' is incompatible with Cloudflare Workers", pkg)).
				WithSuggestion(NPMPackageSuggestion(pkg)))
		}
	}
}

func checkWorkflowDefinition(content string, r *report) {
	if !defineWorkflowRe.MatchString(content) && !exportDefaultRe.MatchString(content) {
		r.fail(domain.NewError(domain.CodeNoWorkflowExport, "Workflow must use defineWorkflow() or export default").
			WithSuggestion("Wrap your workflow in defineWorkflow({ ... })"))
	}

	if m := workflowNameRe.FindStringSubmatch(content); m != nil {
		r.meta.Name = m[1]
	} else {
		r.warn(domain.NewWarning(domain.CodeMissingName, "Workflow should have a name property").
			WithSuggestion("Add: name: 'My Workflow'"))
	}

	// Type is optional; no finding when it is absent.
	if m := workflowTypeRe.FindStringSubmatch(content); m != nil {
		r.meta.Type = m[1]
	}
}

func checkExecuteFunction(content string, r *report) {
	if !hasExecuteRe.MatchString(content) && !hasRunRe.MatchString(content) {
		r.fail(domain.NewError(domain.CodeMissingExecute, "Workflow must have an execute or run function").
			WithSuggestion("Add: async execute({ trigger, actions }) { ... }"))
	}

	// A body that cannot be isolated is skipped, not reported.
	if m := executeBodyRe.FindStringSubmatch(content); m != nil {
		if !strings.Contains(m[1], "return") {
			r.warn(domain.NewWarning(domain.CodeNoReturn, "Execute function should return a result").
				WithSuggestion("Add: return { success: true, data: ... }"))
		}
	}
}

func checkIntegrations(content string, r *report) {
	m := integrationsBlockRe.FindStringSubmatch(content)
	if m == nil {
		return
	}
	block := m[1]

	var found []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			found = append(found, name)
		}
	}

	for _, sm := range serviceNameRe.FindAllStringSubmatch(block, -1) {
		add(strings.ToLower(sm[1]))
	}
	// Bare quoted strings only count when they name a known integration;
	// anything else in the block (scopes, labels) is ignored.
	for _, sm := range shorthandIntegrationRe.FindAllStringSubmatch(block, -1) {
		if name := strings.ToLower(sm[1]); IsKnownIntegration(name) {
			add(name)
		}
	}

	guidance := fmt.Sprintf("Valid integrations: %s...", strings.Join(KnownIntegrations[:5], ", "))
	for _, name := range found {
		if !IsKnownIntegration(name) {
			r.warn(domain.NewWarning(domain.CodeUnknownIntegration, "Unknown integration: "+name).
				WithSuggestion(guidance))
		}
	}

	if len(found) == 0 {
		return
	}
	if !strings.Contains(block, "scopes") {
		r.warn(domain.NewWarning(domain.CodeMissingScopes, "Integrations should specify required scopes").
			WithSuggestion("Add: scopes: ['read_data', 'write_data']"))
	}
	r.meta.Integrations = found
}

func checkTrigger(content string, r *report) {
	if !hasTriggerRe.MatchString(content) {
		r.fail(domain.NewError(domain.CodeMissingTrigger, "Workflow must define a trigger").
			WithSuggestion("Add: trigger: webhook({ service: 'stripe', event: 'payment.succeeded' })"))
		return
	}

	// Call style wins over object style.
	if m := triggerCallRe.FindStringSubmatch(content); m != nil {
		r.meta.Trigger = m[1]
	} else if m := triggerObjectTypeRe.FindStringSubmatch(content); m != nil {
		r.meta.Trigger = m[1]
	}

	if strings.Contains(content, "webhook(") {
		if m := webhookConfigRe.FindStringSubmatch(content); m != nil {
			cfg := m[1]
			if !strings.Contains(cfg, "service") && !strings.Contains(cfg, "event") {
				r.warn(domain.NewWarning(domain.CodeIncompleteWebhook, "Webhook trigger should specify service and event").
					WithSuggestion("Add: service: 'stripe', event: 'payment.succeeded'"))
			}
		}
	}

	if strings.Contains(content, "schedule(") {
		if m := scheduleExprRe.FindStringSubmatch(content); m != nil && !IsValidCron(m[1]) {
			r.fail(domain.NewError(domain.CodeInvalidCron, "Invalid cron expression: "+m[1]).
				WithSuggestion("Use format: '0 8 * * *' (minute hour day month weekday)"))
		}
	}
}

func checkPricing(content string, r *report) {
	if !hasPricingRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeMissingPricing, "Workflow should define pricing for marketplace").
			WithSuggestion("Add: pricing: { model: 'subscription', price: 10, executions: 100 }"))
		return
	}

	pricing := &domain.PricingMetadata{}
	if m := pricingModelRe.FindStringSubmatch(content); m != nil {
		pricing.Model = m[1]
	}
	if m := pricingPriceRe.FindStringSubmatch(content); m != nil {
		// Out-of-range literals are left unset rather than reported as Inf.
		if price, err := strconv.ParseFloat(m[1], 64); err == nil {
			pricing.Price = &price
		}
	}

	if pricing.Model == "subscription" && !hasExecutionsRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeMissingExecutions, "Subscription pricing should specify executions limit").
			WithSuggestion("Add: executions: 100"))
	}

	r.meta.Pricing = pricing
}

func checkAIUsage(content string, r *report) {
	if externalAIRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeExternalAIDetected,
			"External AI providers detected. WORKWAY uses Cloudflare Workers AI only.").
			WithSuggestion("Use: createAIClient(env) with AIModels.LLAMA_3_8B or AIModels.MISTRAL_7B"))
	}

	if r.meta.HasAI != nil && *r.meta.HasAI && !envAccessRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeMissingEnvAccess, "AI usage requires env parameter in execute function").
			WithSuggestion("Update: async execute({ trigger, actions, env }) { ... }"))
	}
}

// maxConsoleStatements is the number of console calls tolerated before
// EXCESSIVE_LOGGING is raised.
const maxConsoleStatements = 3

func checkCommonMistakes(content string, r *report) {
	if n := len(consoleStatementRe.FindAllStringIndex(content, -1)); n > maxConsoleStatements {
		r.warn(domain.NewWarning(domain.CodeExcessiveLogging, fmt.Sprintf("Found %d console statements", n)).
			WithSuggestion("Consider reducing logging in production builds"))
	}

	// One finding no matter how many kinds of secret are present.
	for _, re := range secretPatterns {
		if re.MatchString(content) {
			r.fail(domain.NewError(domain.CodeHardcodedSecret, "Possible hardcoded secret detected").
				WithSuggestion("Use environment variables or secrets manager instead"))
			break
		}
	}

	if awaitInForLoopRe.MatchString(content) || awaitInWhileLoopRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeAwaitInLoop, "Await inside loop detected (may affect performance)").
			WithSuggestion("Consider using Promise.all() for parallel execution"))
	}

	if emptyCatchRe.MatchString(content) {
		r.warn(domain.NewWarning(domain.CodeEmptyCatch, "Empty catch block detected").
			WithSuggestion("Handle or re-throw errors properly"))
	}
}
