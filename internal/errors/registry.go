package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/modalhost/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (M001-M019)
	// ============================================

	"M001": {
		Category: CategoryRuntime,
		Message:  "Modal id is missing",
		Detail:   "An id-keyed modal operation received an empty id. The operation was skipped.",
		DocURL:   docBase + "m001",
	},
	"M002": {
		Category: CategoryRuntime,
		Message:  "No modal provider mounted",
		Detail:   "No host controller was found in the owner chain and no host has published one globally.",
		DocURL:   docBase + "m002",
	},
	"M003": {
		Category: CategoryHost,
		Message:  "Lazy modal component failed to load",
		Detail:   "The loader of a lazy component returned an error. The modal renders nothing until it is destroyed.",
		DocURL:   docBase + "m003",
	},
	"M004": {
		Category: CategoryHost,
		Message:  "Unsupported modal component",
		Detail:   "The host cannot render the component stored in this record. Components must implement the host's renderer interface.",
		DocURL:   docBase + "m004",
	},

	// ============================================
	// Config Errors (M120-M149)
	// ============================================

	"M120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   docBase + "m120",
	},
	"M122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
		DocURL:   docBase + "m122",
	},
	"M141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No modalhost.yaml or modalhost.json was found.",
		DocURL:   docBase + "m141",
	},

	// ============================================
	// Scenario Errors (M150-M159)
	// ============================================

	"M150": {
		Category: CategoryScenario,
		Message:  "Invalid scenario step",
		Detail:   "A scenario step is malformed or refers to an unknown action or modal.",
		DocURL:   docBase + "m150",
	},
	"M151": {
		Category: CategoryScenario,
		Message:  "Scenario expectation failed",
		Detail:   "The rendered output or registry state did not match the step's expectation.",
		DocURL:   docBase + "m151",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
