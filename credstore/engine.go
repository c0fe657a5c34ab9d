package credstore

import (
	"fmt"
	"io"
	"time"

	keystore "github.com/pavlo-v-chernykh/keystore-go/v4"
)

// defaultKeyStoreType is the engine used when Config.KeyStoreType is empty
// (spec §6 "platform default").
const defaultKeyStoreType = "jceks"

// oidPKCS7Data is the algorithm OID spec §4.3 says tags every synthetic
// secret-key entry: "1.2.840.113549.1.7.1" (PKCS#7 data), meaning "this
// entry transports an opaque blob, not a real key". keystore-go's
// SecretKeyEntry has no separate algorithm field to stamp with this OID —
// unlike a polymorphic Java KeyStore, the Go container just stores bytes —
// so the tag is documentary here: the actual credential algorithm always
// lives in the alias (AliasCodec's algorithm_lc component), which is what
// every read path actually keys off of.
const oidPKCS7Data = "1.2.840.113549.1.7.1"

// entryKind is the concrete kind an underlying alias was written as.
type entryKind int

const (
	entryKindUnknown entryKind = iota
	entryKindSecret
	entryKindPrivate
)

// engine adapts github.com/pavlo-v-chernykh/keystore-go/v4 — the
// "conventional key store" spec §1 calls an external collaborator — to the
// narrow surface Persistence and the Store façade need. It is the only file
// in this package importing the engine library directly.
type engine struct {
	ks keystore.KeyStore
}

// newEngine validates Config.KeyStoreType and opens a fresh, empty
// container. Only the keystore-go-backed JCEKS-compatible layout is
// supported; see SPEC_FULL.md §2 for why a PKCS12 engine was evaluated and
// rejected.
func newEngine(keyStoreType string) (*engine, error) {
	switch keyStoreType {
	case "", defaultKeyStoreType:
	default:
		return nil, fmt.Errorf("%w: unsupported keyStoreType %q", ErrCannotInitialize, keyStoreType)
	}
	return &engine{ks: keystore.New()}, nil
}

func (e *engine) load(r io.Reader, password []byte) error {
	return e.ks.Load(r, password)
}

func (e *engine) flush(w io.Writer, password []byte) error {
	return e.ks.Store(w, password)
}

// aliases returns every underlying alias currently in the container,
// regardless of whether AliasCodec can parse it — boot-scan reconciliation
// decides what to do with the unparseable ones.
func (e *engine) aliases() []string {
	return e.ks.Aliases()
}

// kindOf reports the concrete entry kind stored under alias.
func (e *engine) kindOf(alias string) entryKind {
	switch {
	case e.ks.IsPrivateKeyEntry(alias):
		return entryKindPrivate
	case e.ks.IsSecretKeyEntry(alias):
		return entryKindSecret
	default:
		return entryKindUnknown
	}
}

func (e *engine) deleteEntry(alias string) error {
	return e.ks.DeleteEntry(alias)
}

// setSecretBlob writes every blob-codec credential variant (spec §4.3,
// everything but X509ChainPrivate) as a secret-key entry.
func (e *engine) setSecretBlob(alias string, blob []byte, password []byte) error {
	return e.ks.SetSecretKeyEntry(alias, keystore.SecretKeyEntry{
		CreationTime: time.Now(),
		Content:      blob,
	}, password)
}

func (e *engine) getSecretBlob(alias string, password []byte) ([]byte, error) {
	entry, err := e.ks.GetSecretKeyEntry(alias, password)
	if err != nil {
		return nil, err
	}
	return entry.Content, nil
}

// setPrivateChain writes the one variant (X509ChainPrivate) the container
// hosts natively.
func (e *engine) setPrivateChain(alias string, privatePKCS8 []byte, certs [][]byte, password []byte) error {
	chain := make([]keystore.Certificate, len(certs))
	for i, c := range certs {
		chain[i] = keystore.Certificate{Type: "X509", Content: c}
	}
	return e.ks.SetPrivateKeyEntry(alias, keystore.PrivateKeyEntry{
		CreationTime:     time.Now(),
		PrivateKey:       privatePKCS8,
		CertificateChain: chain,
	}, password)
}

func (e *engine) getPrivateChain(alias string, password []byte) (privatePKCS8 []byte, certs [][]byte, err error) {
	entry, err := e.ks.GetPrivateKeyEntry(alias, password)
	if err != nil {
		return nil, nil, err
	}
	certs = make([][]byte, len(entry.CertificateChain))
	for i, c := range entry.CertificateChain {
		certs[i] = c.Content
	}
	return entry.PrivateKey, certs, nil
}

// read fetches whatever is stored under alias, dispatching on its concrete
// kind, for use by both boot-scan reconciliation and Retrieve.
func (e *engine) read(alias string, password []byte) (decoded, error) {
	switch e.kindOf(alias) {
	case entryKindSecret:
		blob, err := e.getSecretBlob(alias, password)
		if err != nil {
			return decoded{}, err
		}
		return decoded{kind: entryKindSecret, blob: blob}, nil
	case entryKindPrivate:
		priv, certs, err := e.getPrivateChain(alias, password)
		if err != nil {
			return decoded{}, err
		}
		return decoded{kind: entryKindPrivate, privatePKCS8: priv, certs: certs}, nil
	default:
		return decoded{}, fmt.Errorf("%w: alias %q is neither a secret-key nor private-key entry", ErrInvalidEntryType, alias)
	}
}

// write places the encoded form of a credential under alias, replacing
// whatever (if anything) was there.
func (e *engine) write(alias string, d decoded, password []byte) error {
	switch d.kind {
	case entryKindSecret:
		return e.setSecretBlob(alias, d.blob, password)
	case entryKindPrivate:
		return e.setPrivateChain(alias, d.privatePKCS8, d.certs, password)
	default:
		return fmt.Errorf("%w: nothing to write", ErrCannotWrite)
	}
}
