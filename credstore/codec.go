package credstore

import (
	"encoding/asn1"
	"fmt"
)

// decoded is what the engine actually read back for an alias: either a
// secret-key blob or a native private-key-plus-chain entry (spec §4.3).
type decoded struct {
	kind         entryKind
	blob         []byte
	privatePKCS8 []byte
	certs        [][]byte
}

// expectedKind returns the entry kind a correctly-written credential of
// credType must have been stored as. Every variant but X509ChainPrivate
// goes through the blob codec into a secret-key entry (spec §4.3); a
// mismatch at read time is ErrInvalidEntryType (spec §7).
func expectedKind(credType CredentialType) entryKind {
	if credType == TypeX509ChainPrivate {
		return entryKindPrivate
	}
	return entryKindSecret
}

// derKeyPair mirrors spec §4.3's KeyPair DER shape: SEQUENCE { publicSPKI,
// privatePKCS8 }, each member the already-DER-encoded bytes of the key,
// embedded verbatim (not re-wrapped in an OCTET STRING).
type derKeyPair struct {
	PublicSPKI   asn1.RawValue
	PrivatePKCS8 asn1.RawValue
}

// derCertChain mirrors spec §4.3's certificate-chain DER shape: INTEGER
// count then a SEQUENCE of the already-DER-encoded certificates.
type derCertChain struct {
	Count int
	Certs []asn1.RawValue
}

func marshalKeyPairDER(publicSPKI, privatePKCS8 []byte) ([]byte, error) {
	return asn1.Marshal(derKeyPair{
		PublicSPKI:   asn1.RawValue{FullBytes: publicSPKI},
		PrivatePKCS8: asn1.RawValue{FullBytes: privatePKCS8},
	})
}

func unmarshalKeyPairDER(der []byte) (publicSPKI, privatePKCS8 []byte, err error) {
	var v derKeyPair
	if _, err := asn1.Unmarshal(der, &v); err != nil {
		return nil, nil, err
	}
	return v.PublicSPKI.FullBytes, v.PrivatePKCS8.FullBytes, nil
}

func marshalCertChainDER(certs [][]byte) ([]byte, error) {
	raw := make([]asn1.RawValue, len(certs))
	for i, c := range certs {
		raw[i] = asn1.RawValue{FullBytes: c}
	}
	return asn1.Marshal(derCertChain{Count: len(certs), Certs: raw})
}

func unmarshalCertChainDER(der []byte) ([][]byte, error) {
	var v derCertChain
	if _, err := asn1.Unmarshal(der, &v); err != nil {
		return nil, err
	}
	if v.Count != len(v.Certs) {
		return nil, fmt.Errorf("%w: certificate chain count %d does not match %d entries", ErrCannotRead, v.Count, len(v.Certs))
	}
	out := make([][]byte, len(v.Certs))
	for i, c := range v.Certs {
		out[i] = c.FullBytes
	}
	return out, nil
}

// encodeCredential implements the encode half of CredentialCodec (spec
// §4.3): every variant maps to either a secret-key blob or, for
// X509ChainPrivate alone, a native private-key-plus-chain entry.
func encodeCredential(c Credential) (decoded, error) {
	switch v := c.(type) {
	case *SecretKeyCredential:
		return decoded{kind: entryKindSecret, blob: cloneBytes(v.Encoded)}, nil

	case *PublicKeyCredential:
		return decoded{kind: entryKindSecret, blob: cloneBytes(v.SPKI)}, nil

	case *KeyPairCredential:
		blob, err := marshalKeyPairDER(v.PublicSPKI, v.PrivatePKCS8)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: encode key pair: %v", ErrCannotWrite, err)
		}
		return decoded{kind: entryKindSecret, blob: blob}, nil

	case *X509ChainPublicCredential:
		if len(v.Certs) == 0 {
			return decoded{}, fmt.Errorf("%w: certificate chain must be non-empty", ErrUnsupportedCredential)
		}
		blob, err := marshalCertChainDER(v.Certs)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: encode certificate chain: %v", ErrCannotWrite, err)
		}
		return decoded{kind: entryKindSecret, blob: blob}, nil

	case *X509ChainPrivateCredential:
		if len(v.Certs) == 0 {
			return decoded{}, fmt.Errorf("%w: certificate chain must be non-empty", ErrUnsupportedCredential)
		}
		return decoded{
			kind:         entryKindPrivate,
			privatePKCS8: cloneBytes(v.PrivatePKCS8),
			certs:        cloneChain(v.Certs),
		}, nil

	case *BearerTokenCredential:
		return decoded{kind: entryKindSecret, blob: []byte(v.Token)}, nil

	case *PasswordCredential:
		blob, err := encodePasswordDER(v)
		if err != nil {
			return decoded{}, err
		}
		return decoded{kind: entryKindSecret, blob: blob}, nil

	default:
		return decoded{}, fmt.Errorf("%w: credential type %T", ErrUnsupportedCredential, c)
	}
}

// decodeCredential implements the decode half, given the indexed tuple and
// what the engine actually stored under the alias.
func decodeCredential(credType CredentialType, algorithm string, params []byte, d decoded) (Credential, error) {
	if d.kind != expectedKind(credType) {
		return nil, fmt.Errorf("%w: %s expects a %s entry, found %s", ErrInvalidEntryType, credType, expectedKind(credType), d.kind)
	}

	switch credType {
	case TypeSecretKey:
		return &SecretKeyCredential{Alg: algorithm, Params_: params, Encoded: cloneBytes(d.blob)}, nil

	case TypePublicKey:
		return &PublicKeyCredential{Alg: algorithm, Params_: params, SPKI: cloneBytes(d.blob)}, nil

	case TypeKeyPair:
		pub, priv, err := unmarshalKeyPairDER(d.blob)
		if err != nil {
			return nil, fmt.Errorf("%w: decode key pair: %v", ErrCannotRead, err)
		}
		return &KeyPairCredential{Alg: algorithm, Params_: params, PublicSPKI: pub, PrivatePKCS8: priv}, nil

	case TypeX509ChainPublic:
		certs, err := unmarshalCertChainDER(d.blob)
		if err != nil {
			return nil, fmt.Errorf("%w: decode certificate chain: %v", ErrCannotRead, err)
		}
		return &X509ChainPublicCredential{Alg: algorithm, Params_: params, Certs: certs}, nil

	case TypeX509ChainPrivate:
		return &X509ChainPrivateCredential{
			Alg:          algorithm,
			Params_:      params,
			PrivatePKCS8: cloneBytes(d.privatePKCS8),
			Certs:        cloneChain(d.certs),
		}, nil

	case TypeBearerToken:
		return &BearerTokenCredential{Token: string(d.blob)}, nil

	case TypePassword:
		return decodePasswordDER(algorithm, params, d.blob)

	default:
		return nil, fmt.Errorf("%w: credential type %q", ErrUnsupportedCredential, credType)
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneChain(chain [][]byte) [][]byte {
	out := make([][]byte, len(chain))
	for i, c := range chain {
		out[i] = cloneBytes(c)
	}
	return out
}

func (k entryKind) String() string {
	switch k {
	case entryKindSecret:
		return "secret-key"
	case entryKindPrivate:
		return "private-key"
	default:
		return "unknown"
	}
}
