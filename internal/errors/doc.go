// Package errors provides coded diagnostics for vtree.
//
// Every condition the engine can report has a stable code (e.g. "V001") that
// maps to a category, a short message and a longer explanation. Render-time
// conditions are never fatal: the reconciler reports them and degrades to a
// placeholder. Configuration, tree document and snapshot failures are
// returned to the caller as *Error values.
//
// # Categories
//
//   - render: shapes the normalizer or reconciler cannot classify
//   - host: host tree primitive preconditions that did not hold
//   - config: vtree.json problems
//   - treefile: tree document decoding and reference resolution
//   - snapshot: snapshot store failures
//
// # Usage
//
//	err := errors.New("V021").
//	    WithDetail(`component "Card" is not registered`).
//	    WithSuggestion("Add Card to treefile.Options.Components")
//
//	fmt.Print(err.Format())
//	// ERROR V021: Unknown component or action reference
//	//
//	//   component "Card" is not registered
//	//
//	//   Hint: Add Card to treefile.Options.Components
package errors
