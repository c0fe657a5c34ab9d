package credstore

// CredentialType identifies one of the seven closed-set credential variants
// (spec §3). Its String value is also the credential_type_token used in the
// underlying alias grammar (spec §4.1), so it is restricted to [a-z0-9_]+.
type CredentialType string

const (
	TypeSecretKey          CredentialType = "secretkey"
	TypePublicKey          CredentialType = "publickey"
	TypeKeyPair            CredentialType = "keypair"
	TypeX509ChainPublic    CredentialType = "x509chainpublic"
	TypeX509ChainPrivate   CredentialType = "x509chainprivate"
	TypeBearerToken        CredentialType = "bearertoken"
	TypePassword           CredentialType = "password"
)

// subtypesOf lists, for each declared type, the set of types a loose match
// (spec §4.4 step 2) should accept when a caller asks for that type. A
// credential's own Type() is always included so that an exact match never
// needs the loose path. Only X509ChainPrivate is presently modeled as a
// "richer" variant of X509ChainPublic (both carry a certificate chain; the
// private variant is a valid answer to a public-chain request in the same
// sense that a PrivateKeyEntry satisfies a request for "anything with this
// alias's cert chain"). All other types are leaves.
var subtypesOf = map[CredentialType][]CredentialType{
	TypeSecretKey:        {TypeSecretKey},
	TypePublicKey:        {TypePublicKey},
	TypeKeyPair:          {TypeKeyPair},
	TypeX509ChainPublic:  {TypeX509ChainPublic, TypeX509ChainPrivate},
	TypeX509ChainPrivate: {TypeX509ChainPrivate},
	TypeBearerToken:      {TypeBearerToken},
	TypePassword:         {TypePassword},
}

// isSubtype reports whether candidate is declared a subtype of requested
// (spec §4.4's "subtype" relation — reflexive: every type is its own
// subtype).
func isSubtype(candidate, requested CredentialType) bool {
	for _, t := range subtypesOf[requested] {
		if t == candidate {
			return true
		}
	}
	return false
}

// Credential is the tagged-sum interface every stored variant implements.
// Algorithm and Parameters together with Type() form the lookup tuple spec
// §3/§4.4 index on. Parameters returns whatever Params_ the caller set
// (nil when unset) for every variant except BearerTokenCredential, which
// has no parameters and always returns nil.
type Credential interface {
	Type() CredentialType
	Algorithm() string
	Parameters() []byte
}

// SecretKeyCredential is raw symmetric key material plus its algorithm name
// (spec §3.1). Encoded holds the key's native encoding (e.g. the raw bytes
// for an opaque AES/HMAC key).
type SecretKeyCredential struct {
	Alg     string
	Params_ []byte
	Encoded []byte
}

func (c *SecretKeyCredential) Type() CredentialType { return TypeSecretKey }
func (c *SecretKeyCredential) Algorithm() string    { return c.Alg }
func (c *SecretKeyCredential) Parameters() []byte   { return c.Params_ }

// PublicKeyCredential is an asymmetric public key (spec §3.2). SPKI holds
// the DER SubjectPublicKeyInfo.
type PublicKeyCredential struct {
	Alg     string
	Params_ []byte
	SPKI    []byte
}

func (c *PublicKeyCredential) Type() CredentialType { return TypePublicKey }
func (c *PublicKeyCredential) Algorithm() string    { return c.Alg }
func (c *PublicKeyCredential) Parameters() []byte   { return c.Params_ }

// KeyPairCredential is a public/private key pair of the same algorithm
// (spec §3.3).
type KeyPairCredential struct {
	Alg          string
	Params_      []byte
	PublicSPKI   []byte
	PrivatePKCS8 []byte
}

func (c *KeyPairCredential) Type() CredentialType { return TypeKeyPair }
func (c *KeyPairCredential) Algorithm() string    { return c.Alg }
func (c *KeyPairCredential) Parameters() []byte   { return c.Params_ }

// X509ChainPublicCredential is an ordered, non-empty chain of X.509
// certificates (spec §3.4). Certs holds each certificate's DER, leaf first.
type X509ChainPublicCredential struct {
	Alg     string
	Params_ []byte
	Certs   [][]byte
}

func (c *X509ChainPublicCredential) Type() CredentialType { return TypeX509ChainPublic }
func (c *X509ChainPublicCredential) Algorithm() string    { return c.Alg }
func (c *X509ChainPublicCredential) Parameters() []byte   { return c.Params_ }

// X509ChainPrivateCredential is a private key plus its ordered X.509
// certificate chain (spec §3.5) — the one variant the underlying engine
// stores natively as a private-key entry rather than through the blob codec.
type X509ChainPrivateCredential struct {
	Alg          string
	Params_      []byte
	PrivatePKCS8 []byte
	Certs        [][]byte
}

func (c *X509ChainPrivateCredential) Type() CredentialType { return TypeX509ChainPrivate }
func (c *X509ChainPrivateCredential) Algorithm() string    { return c.Alg }
func (c *X509ChainPrivateCredential) Parameters() []byte   { return c.Params_ }

// BearerTokenCredential is an opaque textual token with no algorithm and no
// parameters (spec §3.6).
type BearerTokenCredential struct {
	Token string
}

func (c *BearerTokenCredential) Type() CredentialType { return TypeBearerToken }
func (c *BearerTokenCredential) Algorithm() string    { return "" }
func (c *BearerTokenCredential) Parameters() []byte   { return nil }

// PasswordCredential is one of the closed set of password algorithms (spec
// §3.7, family table in §4.3). Which fields are populated depends on Alg's
// family; see password.go for the table and codec.
type PasswordCredential struct {
	Alg     string
	Params_ []byte

	// derKindHashSaltIter (bcrypt, bsd-crypt-des, scram-sha-*, sun-crypt-md5*, crypt-sha-*)
	Hash           []byte
	Salt           []byte
	IterationCount int

	// derKindClearUTF8 (clear)
	ClearPassword string

	// derKindUsernameRealmDigest (digest-*)
	Username string
	Realm    string
	Digest   []byte

	// derKindHashSeedSeq (otp-*)
	Seed           []byte
	SequenceNumber int

	// derKindMasked (masked-*)
	InitialKeyMaterial string
	MaskedBytes        []byte
}

func (c *PasswordCredential) Type() CredentialType { return TypePassword }
func (c *PasswordCredential) Algorithm() string    { return c.Alg }
func (c *PasswordCredential) Parameters() []byte   { return c.Params_ }
