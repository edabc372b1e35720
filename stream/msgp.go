package stream

import "github.com/tinylib/msgp/msgp"

// WriteMsgp encodes v as MessagePack onto s, an alternate wire codec to
// the endian-aware primitives above for types that already implement
// msgp.Encodable (generated by msgp's code generator).
func WriteMsgp(s Stream, v msgp.Encodable) error {
	w := msgp.NewWriter(s)
	if err := v.EncodeMsg(w); err != nil {
		return err
	}
	return w.Flush()
}

// ReadMsgp decodes a MessagePack value from s into v.
func ReadMsgp(s Stream, v msgp.Decodable) error {
	r := msgp.NewReader(s)
	return v.DecodeMsg(r)
}
