package thread

import (
	"sync"

	"github.com/tfcore/tf/garbage"
)

// registry is the process-wide ThreadHash: goroutine id -> Thread,
// populated for the lifetime of each Thread's run function so
// CurrentThread can resolve the calling goroutine's owning Thread.
var (
	registryMu sync.Mutex
	registry   = map[uint64]*Thread{}
)

func register(t *Thread) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[garbage.GoroutineID()] = t
}

func unregister() {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, garbage.GoroutineID())
}

// CurrentThread looks the calling goroutine up in the ThreadHash,
// returning nil if it was not spawned through Thread.Start.
func CurrentThread() *Thread {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[garbage.GoroutineID()]
}
