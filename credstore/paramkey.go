package credstore

import (
	"bytes"
	"crypto/sha256"
)

// ParamKey is a value-equality wrapper around an opaque, DER-encoded
// algorithm-parameter specification (spec §4.2). Equality is delegated to
// structural comparison of the canonical DER bytes: encoding/asn1 always
// produces canonical DER for the parameter shapes this store encodes (see
// codec.go), so byte equality of that DER is a faithful stand-in for the
// "platform helper" spec.md describes comparing decoded parameter objects —
// there is no ecosystem equivalent of Java's AlgorithmParameterSpec equality
// helper in the retrieved pack, and DER canonical-form comparison is the
// textbook substitute.
//
// The hash is precomputed at construction so ParamKey values sort into map
// buckets without re-hashing the DER payload on every lookup.
type ParamKey struct {
	sum [sha256.Size]byte
	der []byte
}

// NewParamKey wraps der, which may be nil to represent "no parameters".
func NewParamKey(der []byte) ParamKey {
	k := ParamKey{sum: sha256.Sum256(der)}
	if len(der) > 0 {
		k.der = append([]byte(nil), der...)
	}
	return k
}

// Equal reports whether k and other wrap structurally identical DER.
func (k ParamKey) Equal(other ParamKey) bool {
	return k.sum == other.sum && bytes.Equal(k.der, other.der)
}

// IsEmpty reports whether k wraps no parameters (the "noParams" case).
func (k ParamKey) IsEmpty() bool {
	return len(k.der) == 0
}

// DER returns the wrapped parameter bytes, or nil if there are none.
func (k ParamKey) DER() []byte {
	if len(k.der) == 0 {
		return nil
	}
	return append([]byte(nil), k.der...)
}

// mapKey is the comparable (fixed-size) projection of k used as the actual
// Go map key inside BottomEntry; the full der is kept alongside for an
// Equal confirmation on the vanishingly unlikely event of a hash collision.
func (k ParamKey) mapKey() [sha256.Size]byte {
	return k.sum
}
