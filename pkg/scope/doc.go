// Package scope provides the owner hierarchy that bounds mounted UI scopes.
//
// An Owner corresponds to one mounted piece of the tree: a modal provider,
// a page, a component. Owners form a hierarchy that mirrors the tree. When
// an Owner is disposed (unmounted), its children are disposed first and its
// cleanup functions run in reverse registration order.
//
// Owners also carry scoped values. A provider stores its control surface on
// its own Owner, and descendants find it with Lookup:
//
//	root := scope.NewOwner(nil)
//	root.SetValue(modal.ContextKey, controller)
//
//	page := scope.NewOwner(root)
//	v, ok := page.Lookup(modal.ContextKey) // found on root
package scope
