package credstore

import (
	"encoding/asn1"
	"fmt"
	"strings"
)

// derKind identifies which of the spec §4.3 password DER shapes an
// algorithm uses.
type derKind int

const (
	derKindHashSaltIter derKind = iota
	derKindClearUTF8
	derKindUsernameRealmDigest
	derKindHashSeedSeq
	derKindHashSalt
	derKindDigestOnly
	derKindMasked
)

// passwordFamilies is the closed set of password algorithms this store
// knows how to transport, per spec §3.7/§4.3. "masked-" is matched by
// prefix rather than enumerated exhaustively, mirroring the spec's "any
// masked-password family" wording — the DER shape is identical across every
// masked variant, only the algorithm name (and therefore the cipher the
// caller applies when unmasking) differs.
var passwordFamilies = map[string]derKind{
	"bcrypt":                 derKindHashSaltIter,
	"bsd-crypt-des":          derKindHashSaltIter,
	"scram-sha-1":            derKindHashSaltIter,
	"scram-sha-256":          derKindHashSaltIter,
	"scram-sha-384":          derKindHashSaltIter,
	"scram-sha-512":          derKindHashSaltIter,
	"sun-crypt-md5":          derKindHashSaltIter,
	"sun-crypt-md5-bare-salt": derKindHashSaltIter,
	"crypt-sha-256":          derKindHashSaltIter,
	"crypt-sha-512":          derKindHashSaltIter,

	"clear": derKindClearUTF8,

	"digest-md5":    derKindUsernameRealmDigest,
	"digest-sha":    derKindUsernameRealmDigest,
	"digest-sha-256": derKindUsernameRealmDigest,
	"digest-sha-384": derKindUsernameRealmDigest,
	"digest-sha-512": derKindUsernameRealmDigest,

	"otp-md5":  derKindHashSeedSeq,
	"otp-sha1": derKindHashSeedSeq,

	"salted-digest-salt-first":     derKindHashSalt,
	"salted-digest-password-first": derKindHashSalt,
	"unix-des-crypt":               derKindHashSalt,
	"unix-md5-crypt":               derKindHashSalt,

	"simple-digest-md2":    derKindDigestOnly,
	"simple-digest-md5":    derKindDigestOnly,
	"simple-digest-sha-1":  derKindDigestOnly,
	"simple-digest-sha-256": derKindDigestOnly,
	"simple-digest-sha-384": derKindDigestOnly,
	"simple-digest-sha-512": derKindDigestOnly,
}

const maskedPrefix = "masked-"

// passwordDERKind returns the DER family for alg, or false if alg is
// outside the closed set — the ErrUnsupportedCredential case spec §4.3
// describes.
func passwordDERKind(alg string) (derKind, bool) {
	if strings.HasPrefix(alg, maskedPrefix) {
		return derKindMasked, true
	}
	kind, ok := passwordFamilies[alg]
	return kind, ok
}

// --- DER shapes (spec §4.3 table) -------------------------------------------

type derHashSaltIter struct {
	Hash           []byte
	Salt           []byte
	IterationCount int
}

type derUsernameRealmDigest struct {
	Username []byte
	Realm    []byte
	Digest   []byte
}

type derHashSeedSeq struct {
	Hash           []byte
	Seed           []byte
	SequenceNumber int
}

type derHashSalt struct {
	Hash []byte
	Salt []byte
}

type derDigestOnly struct {
	Digest []byte
}

type derMasked struct {
	InitialKeyMaterial []byte
	IterationCount     int
	Salt               []byte
	MaskedBytes        []byte
}

// encodePasswordDER implements the encode half of spec §4.3's password
// table.
func encodePasswordDER(c *PasswordCredential) ([]byte, error) {
	kind, ok := passwordDERKind(c.Alg)
	if !ok {
		return nil, fmt.Errorf("%w: password algorithm %q", ErrUnsupportedCredential, c.Alg)
	}
	switch kind {
	case derKindHashSaltIter:
		return asn1.Marshal(derHashSaltIter{Hash: c.Hash, Salt: c.Salt, IterationCount: c.IterationCount})
	case derKindClearUTF8:
		return asn1.Marshal([]byte(c.ClearPassword))
	case derKindUsernameRealmDigest:
		return asn1.Marshal(derUsernameRealmDigest{
			Username: []byte(c.Username),
			Realm:    []byte(c.Realm),
			Digest:   c.Digest,
		})
	case derKindHashSeedSeq:
		return asn1.Marshal(derHashSeedSeq{Hash: c.Hash, Seed: c.Seed, SequenceNumber: c.SequenceNumber})
	case derKindHashSalt:
		return asn1.Marshal(derHashSalt{Hash: c.Hash, Salt: c.Salt})
	case derKindDigestOnly:
		return asn1.Marshal(derDigestOnly{Digest: c.Digest})
	case derKindMasked:
		return asn1.Marshal(derMasked{
			InitialKeyMaterial: []byte(c.InitialKeyMaterial),
			IterationCount:     c.IterationCount,
			Salt:               c.Salt,
			MaskedBytes:        c.MaskedBytes,
		})
	default:
		return nil, fmt.Errorf("%w: password algorithm %q", ErrUnsupportedCredential, c.Alg)
	}
}

// decodePasswordDER implements the decode half, populating a
// PasswordCredential from der under alg and params.
func decodePasswordDER(alg string, params []byte, der []byte) (*PasswordCredential, error) {
	kind, ok := passwordDERKind(alg)
	if !ok {
		return nil, fmt.Errorf("%w: password algorithm %q", ErrUnsupportedCredential, alg)
	}
	out := &PasswordCredential{Alg: alg, Params_: params}
	switch kind {
	case derKindHashSaltIter:
		var v derHashSaltIter
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.Hash, out.Salt, out.IterationCount = v.Hash, v.Salt, v.IterationCount
	case derKindClearUTF8:
		var v []byte
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.ClearPassword = string(v)
	case derKindUsernameRealmDigest:
		var v derUsernameRealmDigest
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.Username, out.Realm, out.Digest = string(v.Username), string(v.Realm), v.Digest
	case derKindHashSeedSeq:
		var v derHashSeedSeq
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.Hash, out.Seed, out.SequenceNumber = v.Hash, v.Seed, v.SequenceNumber
	case derKindHashSalt:
		var v derHashSalt
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.Hash, out.Salt = v.Hash, v.Salt
	case derKindDigestOnly:
		var v derDigestOnly
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.Digest = v.Digest
	case derKindMasked:
		var v derMasked
		if _, err := asn1.Unmarshal(der, &v); err != nil {
			return nil, fmt.Errorf("%w: decode password: %v", ErrCannotRead, err)
		}
		out.InitialKeyMaterial = string(v.InitialKeyMaterial)
		out.IterationCount = v.IterationCount
		out.Salt = v.Salt
		out.MaskedBytes = v.MaskedBytes
	default:
		return nil, fmt.Errorf("%w: password algorithm %q", ErrUnsupportedCredential, alg)
	}
	return out, nil
}
