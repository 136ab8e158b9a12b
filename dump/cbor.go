package dump

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so equal docs
// always encode to identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("dump: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBOR encodes d deterministically.
func CBOR(d *Doc) ([]byte, error) {
	return encMode.Marshal(d)
}

// NewCBOREncoder returns a stream encoder that writes docs to w as a CBOR
// sequence.
func NewCBOREncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DecodeCBOR decodes a doc produced by CBOR. Field values come back as
// uint64, bool or string.
func DecodeCBOR(data []byte) (*Doc, error) {
	var d Doc
	if err := cbor.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
