package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Render Errors (V001-V009)
	// ============================================

	"V001": {
		Category: CategoryRender,
		Message:  "Unrecognized virtual node shape",
		Detail:   "The value is not a string, number, slice, element, component or nil. It was rendered as an empty text node.",
	},
	"V002": {
		Category: CategoryRender,
		Message:  "Component recursion depth exceeded",
		Detail:   "A component kept returning components past the configured depth limit. It was rendered as an empty text node.",
	},
	"V003": {
		Category: CategoryRender,
		Message:  "Event property is not a handler",
		Detail:   "Properties starting with \"on\" must hold an events.Handler, func(*host.Event) or func().",
	},
	"V004": {
		Category: CategoryHost,
		Message:  "Host tree precondition failed",
		Detail:   "A host node was no longer attached where the reconciler expected it. The operation was skipped.",
	},

	// ============================================
	// Config Errors (V010-V019)
	// ============================================

	"V010": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"V011": {
		Category: CategoryConfig,
		Message:  "Configuration file not readable",
	},

	// ============================================
	// Treefile Errors (V020-V029)
	// ============================================

	"V020": {
		Category: CategoryTreefile,
		Message:  "Tree document could not be decoded",
	},
	"V021": {
		Category: CategoryTreefile,
		Message:  "Unknown component or action reference",
	},

	// ============================================
	// Snapshot Errors (V030-V039)
	// ============================================

	"V030": {
		Category: CategorySnapshot,
		Message:  "Snapshot store failure",
	},
}

// Codes returns all registered error codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
