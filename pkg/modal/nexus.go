package modal

import "sync"

// nexus is the process-wide slot holding the surface of the most recently
// mounted host.
var nexus struct {
	mu      sync.RWMutex
	surface Surface
}

// GetModal returns the surface of the currently mounted host, or nil when
// none is mounted. Callers must treat nil as "no modal host" and skip.
func GetModal() Surface {
	nexus.mu.RLock()
	defer nexus.mu.RUnlock()
	return nexus.surface
}

// Publish makes s the surface returned by GetModal. Hosts call it on mount
// and on every render; the last published surface wins.
func Publish(s Surface) {
	nexus.mu.Lock()
	defer nexus.mu.Unlock()
	nexus.surface = s
}

// Unpublish clears the slot if it still holds s. A host unmounting after a
// newer host has published leaves the newer binding in place.
func Unpublish(s Surface) {
	nexus.mu.Lock()
	defer nexus.mu.Unlock()
	if nexus.surface == s {
		nexus.surface = nil
	}
}
