package object

import "github.com/tfcore/tf/cmn/cos"

// Signature is a short, human-readable per-instance tag minted lazily on
// first use, standing in for the original's debug-build type-punning
// signature check: logs and panics can name a specific instance without
// printing a raw pointer.
func (b *Base) Signature() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sig == "" {
		b.sig = cos.GenUUID()
	}
	return b.sig
}

// Signature is the per-Ref convenience wrapper, used by audience.Audience
// to order Observers deterministically by receiver identity.
func Signature(r Ref) string {
	if r == nil {
		return ""
	}
	return r.base().Signature()
}
