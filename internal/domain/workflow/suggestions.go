package workflow

const genericRuntimeSuggestion = "See docs/WORKERS_RUNTIME_GUIDE.md for alternatives."

var nodeModuleSuggestions = map[string]string{
	"fs":            "Cloudflare Workers have no filesystem. Store data in KV or R2.",
	"path":          "Use string manipulation or URL API instead.",
	"child_process": "Workers cannot spawn processes. Use external services.",
	"crypto":        "Use Web Crypto API: crypto.subtle.digest(), crypto.randomUUID()",
	"http":          "Use native fetch() instead.",
	"https":         "Use native fetch() instead.",
	"buffer":        "Use ArrayBuffer/Uint8Array instead.",
	"stream":        "Use Web Streams API (ReadableStream, WritableStream).",
}

var npmPackageSuggestions = map[string]string{
	"axios":      "Use native fetch() - it works identically in Workers.",
	"request":    "Use native fetch() - request is deprecated anyway.",
	"node-fetch": "Native fetch() is available - no polyfill needed.",
	"express":    "Workers use event-driven model, not HTTP servers.",
	"bcrypt":     "Use bcryptjs (pure JS) or Web Crypto API.",
	"sharp":      "Use Cloudflare Images for image processing.",
	"puppeteer":  "Use an external browser service or Cloudflare Browser Rendering.",
	"mongoose":   "Use Cloudflare D1 (SQLite) or external API.",
	"pg":         "Use Cloudflare D1 or Hyperdrive for PostgreSQL.",
	"mysql":      "Use Cloudflare D1 or Hyperdrive.",
	"redis":      "Use Cloudflare KV for key-value storage.",
}

// NodeModuleSuggestion returns remediation text for a blocked Node.js module.
func NodeModuleSuggestion(module string) string {
	if s, ok := nodeModuleSuggestions[module]; ok {
		return s
	}
	return genericRuntimeSuggestion
}

// NPMPackageSuggestion returns remediation text for an incompatible npm package.
func NPMPackageSuggestion(pkg string) string {
	if s, ok := npmPackageSuggestions[pkg]; ok {
		return s
	}
	return genericRuntimeSuggestion
}
