package object

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerialize and JSONDeserialize are the default Serialize/
// Deserialize hooks a ClassDescriptor can use when the Object's wire
// format is just its exported fields as JSON, matching teacher's
// pervasive jsoniter-for-wire-metadata convention rather than rolling a
// bespoke binary codec per class.
func JSONSerialize(r Ref, w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

func JSONDeserialize(r Ref, rd io.Reader) error {
	return json.NewDecoder(rd).Decode(r)
}
