package credstore

import (
	"bytes"
	"errors"
	"testing"
)

func TestSecretKeyCodecRoundTrip(t *testing.T) {
	in := &SecretKeyCredential{Alg: "aes", Params_: []byte{0x01}, Encoded: []byte("raw-key-bytes")}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	if d.kind != entryKindSecret {
		t.Fatalf("kind = %v, want secret", d.kind)
	}
	out, err := decodeCredential(TypeSecretKey, in.Alg, in.Params_, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	got := out.(*SecretKeyCredential)
	if !bytes.Equal(got.Encoded, in.Encoded) {
		t.Errorf("Encoded = %x, want %x", got.Encoded, in.Encoded)
	}
}

func TestPublicKeyCodecRoundTrip(t *testing.T) {
	in := &PublicKeyCredential{Alg: "ed25519", SPKI: []byte{0x30, 0x02, 0x01, 0x00}}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	out, err := decodeCredential(TypePublicKey, in.Alg, in.Params_, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	got := out.(*PublicKeyCredential)
	if !bytes.Equal(got.SPKI, in.SPKI) {
		t.Errorf("SPKI = %x, want %x", got.SPKI, in.SPKI)
	}
}

func TestKeyPairCodecRoundTrip(t *testing.T) {
	in := &KeyPairCredential{Alg: "rsa", PublicSPKI: []byte{0x30, 0x03, 0x02, 0x01, 0x01}, PrivatePKCS8: []byte{0x30, 0x03, 0x02, 0x01, 0x02}}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	out, err := decodeCredential(TypeKeyPair, in.Alg, in.Params_, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	got := out.(*KeyPairCredential)
	if !bytes.Equal(got.PublicSPKI, in.PublicSPKI) || !bytes.Equal(got.PrivatePKCS8, in.PrivatePKCS8) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestX509ChainPublicCodecRoundTrip(t *testing.T) {
	in := &X509ChainPublicCredential{Alg: "rsa", Certs: [][]byte{
		{0x30, 0x03, 0x02, 0x01, 0x01},
		{0x30, 0x03, 0x02, 0x01, 0x02},
	}}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	out, err := decodeCredential(TypeX509ChainPublic, in.Alg, in.Params_, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	got := out.(*X509ChainPublicCredential)
	if len(got.Certs) != 2 {
		t.Fatalf("len(Certs) = %d, want 2", len(got.Certs))
	}
	for i := range in.Certs {
		if !bytes.Equal(got.Certs[i], in.Certs[i]) {
			t.Errorf("cert[%d] mismatch", i)
		}
	}
}

func TestX509ChainPublicCodecRejectsEmptyChain(t *testing.T) {
	_, err := encodeCredential(&X509ChainPublicCredential{Alg: "rsa"})
	if !errors.Is(err, ErrUnsupportedCredential) {
		t.Errorf("expected ErrUnsupportedCredential, got %v", err)
	}
}

func TestX509ChainPrivateCodecRoundTrip(t *testing.T) {
	in := &X509ChainPrivateCredential{
		Alg:          "rsa",
		PrivatePKCS8: []byte{0x30, 0x03, 0x02, 0x01, 0x09},
		Certs:        [][]byte{{0x30, 0x03, 0x02, 0x01, 0x01}},
	}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	if d.kind != entryKindPrivate {
		t.Fatalf("kind = %v, want private", d.kind)
	}
	out, err := decodeCredential(TypeX509ChainPrivate, in.Alg, in.Params_, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	got := out.(*X509ChainPrivateCredential)
	if !bytes.Equal(got.PrivatePKCS8, in.PrivatePKCS8) || !bytes.Equal(got.Certs[0], in.Certs[0]) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestBearerTokenCodecRoundTrip(t *testing.T) {
	in := &BearerTokenCredential{Token: "abc.def.ghi"}
	d, err := encodeCredential(in)
	if err != nil {
		t.Fatalf("encodeCredential: %v", err)
	}
	out, err := decodeCredential(TypeBearerToken, "", nil, d)
	if err != nil {
		t.Fatalf("decodeCredential: %v", err)
	}
	if out.(*BearerTokenCredential).Token != in.Token {
		t.Errorf("Token = %q, want %q", out.(*BearerTokenCredential).Token, in.Token)
	}
}

// Storing an X509ChainPrivate entry (a native private-key entry) and then
// decoding it as any blob-codec type must fail with ErrInvalidEntryType
// (spec §7's entry-kind contradiction case).
func TestDecodeCredentialRejectsEntryKindMismatch(t *testing.T) {
	d := decoded{kind: entryKindPrivate, privatePKCS8: []byte{0x01}, certs: [][]byte{{0x02}}}
	_, err := decodeCredential(TypeBearerToken, "", nil, d)
	if !errors.Is(err, ErrInvalidEntryType) {
		t.Errorf("expected ErrInvalidEntryType, got %v", err)
	}
}
