package credstore

import (
	"bytes"
	"testing"
)

func passwordCredentialsEqual(a, b *PasswordCredential) bool {
	return a.Alg == b.Alg &&
		bytes.Equal(a.Params_, b.Params_) &&
		bytes.Equal(a.Hash, b.Hash) &&
		bytes.Equal(a.Salt, b.Salt) &&
		a.IterationCount == b.IterationCount &&
		a.ClearPassword == b.ClearPassword &&
		a.Username == b.Username &&
		a.Realm == b.Realm &&
		bytes.Equal(a.Digest, b.Digest) &&
		bytes.Equal(a.Seed, b.Seed) &&
		a.SequenceNumber == b.SequenceNumber &&
		a.InitialKeyMaterial == b.InitialKeyMaterial &&
		bytes.Equal(a.MaskedBytes, b.MaskedBytes)
}

func TestPasswordDERRoundTrip(t *testing.T) {
	cases := []*PasswordCredential{
		{Alg: "bcrypt", Hash: []byte("hash"), Salt: []byte("salt"), IterationCount: 10},
		{Alg: "clear", ClearPassword: "hunter2"},
		{Alg: "digest-md5", Username: "bob", Realm: "example.org", Digest: []byte("digest")},
		{Alg: "otp-md5", Hash: []byte("hash"), Seed: []byte("seed"), SequenceNumber: 42},
		{Alg: "unix-md5-crypt", Hash: []byte("hash"), Salt: []byte("salt")},
		{Alg: "simple-digest-sha-256", Digest: []byte("digest")},
		{Alg: "masked-sha256-aes", InitialKeyMaterial: "ikm", IterationCount: 3, Salt: []byte("salt"), MaskedBytes: []byte("masked")},
	}

	for _, c := range cases {
		t.Run(c.Alg, func(t *testing.T) {
			der, err := encodePasswordDER(c)
			if err != nil {
				t.Fatalf("encodePasswordDER: %v", err)
			}
			got, err := decodePasswordDER(c.Alg, nil, der)
			if err != nil {
				t.Fatalf("decodePasswordDER: %v", err)
			}
			if !passwordCredentialsEqual(got, c) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *got, *c)
			}
		})
	}
}

func TestPasswordUnsupportedAlgorithm(t *testing.T) {
	_, err := encodePasswordDER(&PasswordCredential{Alg: "does-not-exist"})
	if err == nil {
		t.Fatal("expected an error for an unsupported password algorithm")
	}
}
