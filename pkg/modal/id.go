package modal

import (
	"strings"

	"github.com/google/uuid"
)

// Delimiter separates the root and local segments of a composed id.
const Delimiter = "."

// IDGenerator produces the unique tokens used for root and local ids.
// Tests may replace it to get deterministic ids.
var IDGenerator = func() string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")[:12]
}

// GenerateID returns a new collision-resistant token.
func GenerateID() string {
	return IDGenerator()
}

// ComposeID joins a root id and a local id. Segment contents are not validated.
func ComposeID(rootID, localID string) string {
	return rootID + Delimiter + localID
}

// SplitID splits a composed id at its first delimiter.
func SplitID(id string) (rootID, localID string, ok bool) {
	return strings.Cut(id, Delimiter)
}

// HasRoot reports whether id belongs to the given root.
func HasRoot(id, rootID string) bool {
	return rootID != "" && strings.HasPrefix(id, rootID+Delimiter)
}
