package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/go-i2p/credstore/credstore"
)

// openStore unmarshals the bound flags into c and initializes a Store
// against them. Every subcommand shares this path so --location,
// --modifiable, --create, --keystoretype, and --password behave
// identically everywhere.
func openStore() (*credstore.Store, error) {
	cfg := credstore.Config{
		Location:     c.Location,
		Modifiable:   c.Modifiable,
		Create:       c.Create,
		KeyStoreType: c.KeyStoreType,
	}

	var protection credstore.ProtectionParameter
	if c.Password != "" {
		protection = credstore.ClearPassword{Password: c.Password}
	}

	s := credstore.New(logger)
	if err := s.Initialize(cfg, protection); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return s, nil
}

// decodeParamsFlag decodes --params (base64) into the raw DER bytes the
// façade expects, or nil when the flag was left empty.
func decodeParamsFlag(b64 string) ([]byte, error) {
	if b64 == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(b64)
}

// buildCredentialFromFlags assembles a Credential from the --type and
// value flags bound into c. Only the type-specific value flags relevant to
// c.Type are consulted.
func buildCredentialFromFlags(params []byte) (credstore.Credential, error) {
	switch credstore.CredentialType(c.Type) {
	case credstore.TypeBearerToken:
		return &credstore.BearerTokenCredential{Token: c.Token}, nil

	case credstore.TypePassword:
		if c.Algorithm != "clear" {
			return nil, fmt.Errorf("store: only --algorithm=clear is supported from the command line for password credentials")
		}
		return &credstore.PasswordCredential{Alg: c.Algorithm, Params_: params, ClearPassword: c.ClearPassword}, nil

	case credstore.TypeSecretKey:
		raw, err := hex.DecodeString(c.SecretHex)
		if err != nil {
			return nil, fmt.Errorf("store: --secrethex: %w", err)
		}
		return &credstore.SecretKeyCredential{Alg: c.Algorithm, Params_: params, Encoded: raw}, nil

	default:
		return nil, fmt.Errorf("store: unsupported --type %q for command-line input; bearertoken, password (clear), and secretkey are supported", c.Type)
	}
}

// describeCredential renders a retrieved Credential for terminal output
// without trying to print raw binary DER.
func describeCredential(cred credstore.Credential) string {
	switch v := cred.(type) {
	case *credstore.BearerTokenCredential:
		return fmt.Sprintf("bearertoken: %s", v.Token)
	case *credstore.PasswordCredential:
		if v.Alg == "clear" {
			return fmt.Sprintf("password(clear): %s", v.ClearPassword)
		}
		return fmt.Sprintf("password(%s): hash=%x salt=%x", v.Alg, v.Hash, v.Salt)
	case *credstore.SecretKeyCredential:
		return fmt.Sprintf("secretkey(%s): %x", v.Alg, v.Encoded)
	case *credstore.PublicKeyCredential:
		return fmt.Sprintf("publickey(%s): %x", v.Alg, v.SPKI)
	case *credstore.KeyPairCredential:
		return fmt.Sprintf("keypair(%s): public=%x private=%x", v.Alg, v.PublicSPKI, v.PrivatePKCS8)
	case *credstore.X509ChainPublicCredential:
		return fmt.Sprintf("x509chainpublic(%s): %d certificate(s)", v.Alg, len(v.Certs))
	case *credstore.X509ChainPrivateCredential:
		return fmt.Sprintf("x509chainprivate(%s): %d certificate(s)", v.Alg, len(v.Certs))
	default:
		return fmt.Sprintf("%T", cred)
	}
}
