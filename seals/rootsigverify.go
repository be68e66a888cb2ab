package seals

import (
	"errors"
	"fmt"

	"github.com/veraison/go-cose"
)

var (
	ErrSealMalformed    = errors.New("sealed tree state malformed")
	ErrSealVerifyFailed = errors.New("seal signature verification failed")
)

// VerifySealedRoot checks a sealed tree state against a root the caller
// trusts or has recomputed.
//
// The seal travels with the root detached from its payload, so the
// candidate root is reattached and the payload re-encoded before the
// signature check; the deterministic codec guarantees the re-encoding is
// byte identical to what was signed. On success the decoded state is
// returned with Root populated from the candidate.
func VerifySealedRoot(cborCodec CBORCodec, verifier cose.Verifier, sealed []byte, root []byte, external []byte) (TreeState, error) {

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(sealed); err != nil {
		return TreeState{}, fmt.Errorf("%w: %v", ErrSealMalformed, err)
	}

	var state TreeState
	if err := cborCodec.UnmarshalInto(msg.Payload, &state); err != nil {
		return TreeState{}, fmt.Errorf("%w: %v", ErrSealMalformed, err)
	}
	if state.Root != nil {
		return TreeState{}, fmt.Errorf(
			"%w: root present in travelling payload", ErrSealMalformed)
	}

	state.Root = root
	payload, err := cborCodec.MarshalCBOR(state)
	if err != nil {
		return TreeState{}, err
	}
	msg.Payload = payload

	if err := msg.Verify(external, verifier); err != nil {
		return TreeState{}, fmt.Errorf("%w: %v", ErrSealVerifyFailed, err)
	}
	return state, nil
}
