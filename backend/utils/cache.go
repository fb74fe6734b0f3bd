package utils

import "sync"

// ViewCache is a best-effort invalidation signal for server-rendered view
// paths. Mutating actions bump the version of every dependent path; readers
// compare versions to decide whether a cached rendering is stale. Unknown
// paths are a safe no-op at version zero.
type ViewCache struct {
	mu       sync.Mutex
	versions map[string]uint64
}

func NewViewCache() *ViewCache {
	return &ViewCache{versions: make(map[string]uint64)}
}

func (vc *ViewCache) Invalidate(paths ...string) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	for _, path := range paths {
		vc.versions[path]++
	}
}

func (vc *ViewCache) Version(path string) uint64 {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.versions[path]
}

// Views is the process-wide registry used by the domain actions.
var Views = NewViewCache()
