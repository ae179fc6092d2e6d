// Package errors provides structured, actionable error messages for modalhost.
//
// Each error has a registered code (e.g. "M002") that maps to a category, a
// short message, a longer detail and a documentation URL. Errors can carry
// a source location (used for scenario and config files) with surrounding
// lines, a hint and an example.
//
//	err := errors.New("M150").
//	    WithLocation("scenario.yaml", 12, 5).
//	    WithSuggestion("Use one of: show, update, hide, destroy")
//
//	fmt.Println(err.Format())
//
// Runtime operations of the modal registry never return these errors for a
// missing id; that condition is logged instead.
package errors
