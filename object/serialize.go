package object

import "io"

// WriteObject dispatches to r's class.Serialize hook (readObject_Stream
// / writeObject_Stream's write side). Debug builds assert the hook
// exists before it's needed.
func WriteObject(w io.Writer, r Ref) error {
	requireSerialize(r.Class())
	return r.Class().Serialize(r, w)
}

func ReadObject(rd io.Reader, r Ref) error {
	requireDeserialize(r.Class())
	return r.Class().Deserialize(r, rd)
}
