// Package inspect serves a modal surface over HTTP for debugging.
//
// Routes:
//
//	GET    /modals            snapshot of every modal
//	POST   /modals/{id}/hide  hide a modal
//	PATCH  /modals/{id}       merge a JSON object into its props
//	DELETE /modals/{id}       destroy a modal
//	DELETE /roots/{rootID}    destroy every modal under a root
//	GET    /ws                websocket streaming snapshots
//
// Mutating routes answer 204, or 404 when the modal does not exist.
// Props that cannot be represented as JSON (callbacks, channels) are
// omitted from snapshots.
package inspect
