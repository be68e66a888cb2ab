package seals

import (
	"crypto/rand"

	"github.com/veraison/go-cose"
)

// RootSigner produces a COSE Sign1 seal over a TreeState. A seal commits
// the issuer to a specific tree; it should only be created and published
// once the state has been checked against whatever ledger of prior states
// the issuer maintains.
type RootSigner struct {
	issuer    string
	cborCodec CBORCodec
}

func NewRootSigner(issuer string, cborCodec CBORCodec) RootSigner {
	return RootSigner{
		issuer:    issuer,
		cborCodec: cborCodec,
	}
}

// Sign1 signs the provided state and returns the encoded COSE Sign1
// message.
//
// The signature is computed over the full state, root included, but the
// payload that travels has the root detached. Verifiers must supply the
// root from data they hold (or have recomputed), which prevents a seal
// being mistaken for evidence of the root value itself.
func (rs RootSigner) Sign1(coseSigner cose.Signer, keyIdentifier string, state TreeState, external []byte) ([]byte, error) {
	state.Issuer = rs.issuer

	payload, err := rs.cborCodec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
			},
		},
		Payload: payload,
	}
	if err = msg.Sign(rand.Reader, external, coseSigner); err != nil {
		return nil, err
	}

	// We purposefully detach the root so that verifiers are forced to
	// obtain it from the tree data.
	state.Root = nil
	payload, err = rs.cborCodec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}
	msg.Payload = payload

	return msg.MarshalCBOR()
}
