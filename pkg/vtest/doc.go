// Package vtest provides testing helpers for modal hosts and the
// components they render.
//
// # Screen
//
// A Screen mounts a host.Provider, renders it to a fully expanded tree and
// keeps re-rendering until the provider settles, the way an act() wrapper
// flushes effects:
//
//	p := host.NewProvider(nil, host.Config{})
//	screen := vtest.Mount(t, p)
//
//	screen.Act(func() {
//	    modal.GetModal().ShowModal(host.Dialog, modal.Props{"text": "Hello"})
//	})
//	screen.GetByText("Hello")
//
//	screen.Click(screen.GetByText("Close"))
//	if screen.QueryByText("Hello") != nil {
//	    t.Error("dialog still rendered")
//	}
//
// WaitFor polls for conditions that settle asynchronously, such as lazy
// components loading behind a suspense boundary.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Error")
package vtest
