package domain

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	idMu   sync.Mutex
	issued = make(map[string]struct{})
)

// NewID returns a new node identity of the form "<prefix>-xxxxxxxx".
// An ID is never handed out twice in the same process.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = "node"
	}
	prefix = strings.ToLower(prefix)

	idMu.Lock()
	defer idMu.Unlock()
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := prefix + "-" + raw[:8]
		if _, dup := issued[id]; dup {
			continue
		}
		issued[id] = struct{}{}
		return id
	}
}

// ReserveIDs marks IDs loaded from a persisted document as taken so that
// NewID does not reissue them.
func ReserveIDs(ids ...string) {
	idMu.Lock()
	defer idMu.Unlock()
	for _, id := range ids {
		issued[id] = struct{}{}
	}
}
