package workflow

// Version identifies the rule set. Cached results from another version are
// discarded.
const Version = "0.1.0"

// HealthCheck reports whether the engine is ready to validate. Package
// initialization panics on a broken pattern, so reaching this means it is.
func HealthCheck() bool {
	return sdkImportRe != nil && len(blockedModuleRes) == len(BlockedNodeModules)
}
