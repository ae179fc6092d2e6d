// Package modal is a runtime registry for ephemeral UI overlays.
//
// Call sites open, update, hide and destroy overlay components without
// owning the tree that renders them. A host (see the host and termhost
// packages) owns a Registry and a Controller, renders every registered
// record, and feeds close and exit-completion signals back into the
// Controller.
//
// # Ids
//
// Every record is keyed by a composed id "<root>.<local>". The root segment
// groups all modals shown from one mounted scope; the local segment is
// fresh for every ShowModal call. DestroyModalsByRootID removes a whole
// group at once.
//
// # Lifecycle
//
//	h := ctrl.ShowModal(ConfirmDialog, modal.Props{"text": "Delete?"},
//	    modal.DestroyOnClose(true))
//	h.Update(modal.Props{"text": "Really delete?"})
//	h.Hide()    // isOpen=false; removed once the exit transition ends
//	h.Destroy() // no-op when already gone
//
// A hidden record stays in the registry with isOpen=false until the host
// reports that the component's exit transition finished (ExitCompleted)
// or Destroy is called. ExitCompleted removes closed records whose policy
// is HideOnClose (the default) or DestroyOnClose. A component that never
// reports completion keeps its record until Destroy.
//
// Controllers built without WithDeferredExit have no exit path for
// DestroyOnClose: with the default HideOnClose, hide removes such a record
// immediately. Hosts that animate exits pass WithDeferredExit.
//
// # Reaching the registry from anywhere
//
// Hosts publish their Controller through GetModal. Code outside the
// rendering tree must treat a nil result as "no host mounted":
//
//	if m := modal.GetModal(); m != nil {
//	    m.ShowModal(Toast, modal.Props{"text": "Saved"})
//	}
//
// # Diagnostics
//
// The only error condition is an empty id passed to an id-keyed operation.
// It never panics and never returns an error: the operation is skipped and
// MissedModalIDErrorMessage is logged once at warn level.
package modal
