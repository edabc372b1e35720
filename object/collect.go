package object

import "github.com/tfcore/tf/garbage"

// Collect enqueues Release(r) on the current garbage scope and returns
// r unchanged, the Go equivalent of iClob/collect_Object.
func Collect(r Ref) Ref {
	return garbage.Collect(r, func(p any) { Release(p.(Ref)) }).(Ref)
}

// ReleasePtr dereferences *r, releases it, and nils *r out — iReleasePtr.
func ReleasePtr(r *Ref) {
	if r == nil || *r == nil {
		return
	}
	Release(*r)
	*r = nil
}
