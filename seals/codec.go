// Package seals publishes and consumes signed commitments to built merkle
// trees: a CBOR encoded TreeState sealed with a COSE Sign1 signature, and
// inclusion receipts that let a holder of a sealed root check individual
// leaves without the tree.
package seals

import (
	"github.com/fxamacker/cbor/v2"
)

// CBORCodec pairs the encode and decode modes used for all seal and
// receipt material. Encoding must be deterministic: seal verification
// re-encodes the state to reattach the detached root, and any encoding
// freedom would break the signature.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewSealCodec returns the deterministic codec for seal payloads.
func NewSealCodec() (CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	dec, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{enc: enc, dec: dec}, nil
}

func (c CBORCodec) MarshalCBOR(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c CBORCodec) UnmarshalInto(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
