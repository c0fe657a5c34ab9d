package credstore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	s := New(zerolog.Nop())
	if err := s.Initialize(cfg, ClearPassword{Password: "storepw"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

// S1 — clear password round trip through Flush + fresh Initialize.
func TestClearPasswordRoundTrip(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "x.jceks")
	cfg := Config{Location: loc, Modifiable: true, Create: true}

	s := newTestStore(t, cfg)
	if err := s.Store("svc1", &PasswordCredential{Alg: "clear", ClearPassword: "hunter2"}, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	s2 := New(zerolog.Nop())
	if err := s2.Initialize(Config{Location: loc, Modifiable: true}, ClearPassword{Password: "storepw"}); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
	cred, err := s2.Retrieve("svc1", TypePassword, "clear", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	pc, ok := cred.(*PasswordCredential)
	if !ok {
		t.Fatalf("got %T, want *PasswordCredential", cred)
	}
	if pc.ClearPassword != "hunter2" {
		t.Errorf("ClearPassword = %q, want %q", pc.ClearPassword, "hunter2")
	}
}

// S2 — two password algorithms under one alias; retrieving one by
// algorithm, then removing it, leaves the other still retrievable (spec §8
// scenario S2, decided per the §9 open question in DESIGN.md's favor of
// fixing the unconditional top-entry eviction rather than preserving it).
func TestTwoAlgorithmsUnderOneAlias(t *testing.T) {
	cfg := Config{Modifiable: true}
	s := newTestStore(t, cfg)

	if err := s.Store("u", &PasswordCredential{Alg: "bcrypt", Hash: []byte("h1"), Salt: []byte("s1"), IterationCount: 10}, nil); err != nil {
		t.Fatalf("Store bcrypt: %v", err)
	}
	if err := s.Store("u", &PasswordCredential{Alg: "crypt-sha-512", Hash: []byte("h2"), Salt: []byte("s2"), IterationCount: 20}, nil); err != nil {
		t.Fatalf("Store crypt-sha-512: %v", err)
	}

	cred, err := s.Retrieve("u", TypePassword, "bcrypt", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve bcrypt: %v", err)
	}
	pc := cred.(*PasswordCredential)
	if string(pc.Hash) != "h1" {
		t.Errorf("bcrypt hash = %q, want h1", pc.Hash)
	}

	if err := s.Remove("u", TypePassword, "bcrypt", nil); err != nil {
		t.Fatalf("Remove bcrypt: %v", err)
	}

	if cred, err := s.Retrieve("u", TypePassword, "bcrypt", nil, nil); err != nil {
		t.Fatalf("Retrieve removed bcrypt: %v", err)
	} else if cred != nil {
		t.Errorf("expected bcrypt to be gone after Remove, got %+v", cred)
	}

	cred, err = s.Retrieve("u", TypePassword, "crypt-sha-512", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve crypt-sha-512: %v", err)
	}
	if cred == nil {
		t.Fatal("expected the sibling algorithm to remain retrievable after removing only bcrypt")
	}
	pc = cred.(*PasswordCredential)
	if string(pc.Hash) != "h2" {
		t.Errorf("crypt-sha-512 hash = %q, want h2", pc.Hash)
	}
}

// S3 — KeyPairCredential blob round trip.
func TestKeyPairRoundTrip(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "x.jceks")
	s := newTestStore(t, Config{Location: loc, Modifiable: true, Create: true})

	pub := []byte{0x30, 0x03, 0x02, 0x01, 0x01} // not a real SPKI, just distinct DER-shaped bytes
	priv := []byte{0x30, 0x03, 0x02, 0x01, 0x02}
	if err := s.Store("svc", &KeyPairCredential{Alg: "rsa", PublicSPKI: pub, PrivatePKCS8: priv}, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}

	cred, err := s.Retrieve("svc", TypeKeyPair, "rsa", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	kp := cred.(*KeyPairCredential)
	if !bytes.Equal(kp.PublicSPKI, pub) || !bytes.Equal(kp.PrivatePKCS8, priv) {
		t.Errorf("round trip mismatch: got pub=%x priv=%x", kp.PublicSPKI, kp.PrivatePKCS8)
	}
}

// S4 — an underlying alias that does not match the AliasCodec grammar is
// skipped at load and never disturbs any other entry.
func TestUnknownAliasTolerance(t *testing.T) {
	s := newTestStore(t, Config{Modifiable: true})
	if err := s.Store("ok", &BearerTokenCredential{Token: "tok"}, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Manually inject a foreign-looking entry directly into the engine,
	// bypassing the façade, then re-run the boot-scan as Initialize would.
	if err := s.eng.setSecretBlob("junk_no_slashes", []byte("garbage"), nil); err != nil {
		t.Fatalf("inject junk entry: %v", err)
	}
	s.idx = reconcile(s.eng, s.log)

	aliases, err := s.Aliases()
	if err != nil {
		t.Fatalf("Aliases: %v", err)
	}
	for _, a := range aliases {
		if a == "junk_no_slashes" {
			t.Fatalf("unrecognized alias leaked into the index: %v", aliases)
		}
	}

	cred, err := s.Retrieve("ok", TypeBearerToken, "", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve ok: %v", err)
	}
	if cred.(*BearerTokenCredential).Token != "tok" {
		t.Errorf("surviving alias corrupted")
	}
}

// S5 — a non-modifiable store rejects Store/Remove but still serves
// Retrieve.
func TestNonModifiable(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "x.jceks")
	writer := newTestStore(t, Config{Location: loc, Modifiable: true, Create: true})
	if err := writer.Store("svc", &BearerTokenCredential{Token: "tok"}, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	reader := New(zerolog.Nop())
	if err := reader.Initialize(Config{Location: loc, Modifiable: false}, ClearPassword{Password: "storepw"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := reader.Store("svc2", &BearerTokenCredential{Token: "x"}, nil); err == nil {
		t.Fatal("expected Store to fail on a non-modifiable store")
	} else if !isErr(err, ErrNonModifiable) {
		t.Errorf("expected ErrNonModifiable, got %v", err)
	}

	cred, err := reader.Retrieve("svc", TypeBearerToken, "", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if cred.(*BearerTokenCredential).Token != "tok" {
		t.Errorf("unexpected token %q", cred.(*BearerTokenCredential).Token)
	}
}

// S6 — certificate chain round trip preserves length and DER bytes.
func TestCertChainRoundTrip(t *testing.T) {
	s := newTestStore(t, Config{Modifiable: true})
	certs := [][]byte{
		{0x30, 0x03, 0x02, 0x01, 0x01},
		{0x30, 0x03, 0x02, 0x01, 0x02},
		{0x30, 0x03, 0x02, 0x01, 0x03},
	}
	if err := s.Store("chain", &X509ChainPublicCredential{Alg: "rsa", Certs: certs}, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}

	cred, err := s.Retrieve("chain", TypeX509ChainPublic, "rsa", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	got := cred.(*X509ChainPublicCredential)
	if len(got.Certs) != 3 {
		t.Fatalf("len(Certs) = %d, want 3", len(got.Certs))
	}
	for i := range certs {
		if !bytes.Equal(got.Certs[i], certs[i]) {
			t.Errorf("cert[%d] mismatch: got %x want %x", i, got.Certs[i], certs[i])
		}
	}
}

func TestNotInitialized(t *testing.T) {
	s := New(zerolog.Nop())
	if _, err := s.Retrieve("a", TypeBearerToken, "", nil, nil); !isErr(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestAutomaticCreationDisabled(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "does-not-exist.jceks")
	s := New(zerolog.Nop())
	err := s.Initialize(Config{Location: loc, Create: false}, nil)
	if !isErr(err, ErrAutomaticCreationDisabled) {
		t.Errorf("expected ErrAutomaticCreationDisabled, got %v", err)
	}
}

func TestStoreReplacesIdenticalTuple(t *testing.T) {
	s := newTestStore(t, Config{Modifiable: true})
	if err := s.Store("u", &BearerTokenCredential{Token: "first"}, nil); err != nil {
		t.Fatalf("Store first: %v", err)
	}
	if err := s.Store("u", &BearerTokenCredential{Token: "second"}, nil); err != nil {
		t.Fatalf("Store second: %v", err)
	}
	cred, err := s.Retrieve("u", TypeBearerToken, "", nil, nil)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if cred.(*BearerTokenCredential).Token != "second" {
		t.Errorf("Token = %q, want %q", cred.(*BearerTokenCredential).Token, "second")
	}
	aliases, err := s.Aliases()
	if err != nil {
		t.Fatalf("Aliases: %v", err)
	}
	if len(aliases) != 1 {
		t.Errorf("len(Aliases()) = %d, want 1", len(aliases))
	}
}

func TestInvalidProtectionParameter(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Initialize(DefaultConfig(), fakeProtection{})
	if !isErr(err, ErrInvalidProtectionParameter) {
		t.Errorf("expected ErrInvalidProtectionParameter, got %v", err)
	}
}

type fakeProtection struct{}

func (fakeProtection) isProtectionParameter() {}

func isErr(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
