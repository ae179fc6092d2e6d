// Package scenario plays scripted modal sessions against a host.Provider.
//
// A scenario is a YAML document with a list of single-key steps:
//
//	name: confirm then dismiss
//	steps:
//	  - show: {as: confirm, component: dialog, props: {title: Delete?, text: This cannot be undone.}}
//	  - expect: {open: 1, contains: [Delete?]}
//	  - close: confirm          # the user pressed the close button
//	  - exit: confirm           # the exit animation finished
//	  - expect: {count: 0}
//
// Step kinds: show, update, hide, destroy, destroy-root, close, exit and
// expect. After every step the provider is rendered until it settles and
// the HTML and registry state are written to the player's output.
package scenario
