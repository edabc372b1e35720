package xsync

// Guard locks m and returns a function that unlocks it, so callers can
// write `defer xsync.Guard(m)()` for the common "lock for the rest of
// this function" pattern instead of a bare Lock/defer Unlock pair.
func Guard(m *Mutex) func() {
	m.Lock()
	return m.Unlock
}
