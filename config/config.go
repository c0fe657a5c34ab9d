// Package config defines the Conf struct used by the cmd package to bind cobra
// flags and viper configuration values into a single typed structure.
package config

// Conf holds the configuration values populated by viper from cobra flags,
// environment variables, or a config file.
//
// mapstructure tags are required wherever the lowercased Go field name does
// not match the cobra flag name that viper binds. Without them,
// viper.Unmarshal silently leaves those fields at their zero value.
type Conf struct {
	// Location is the path to the backing key store file. Empty means
	// in-memory only (nothing survives process exit; flush becomes a
	// no-op).
	Location string `mapstructure:"location"`

	// Modifiable gates store/remove. Read-only after Initialize.
	Modifiable bool `mapstructure:"modifiable"`

	// Create allows the store to start empty when Location is set but no
	// file exists there yet.
	Create bool `mapstructure:"create"`

	// KeyStoreType selects the underlying container engine. Only "" and
	// "jceks" are presently accepted.
	KeyStoreType string `mapstructure:"keystoretype"`

	// Password is the store's own protection parameter: a clear password
	// guarding both the backing file and, absent a per-entry override,
	// every individual credential. Empty means no password.
	Password string `mapstructure:"password"`

	// Alias is the user-supplied name a credential is filed under.
	Alias string `mapstructure:"alias"`

	// Type is one of the closed-set credential type tokens: secretkey,
	// publickey, keypair, x509chainpublic, x509chainprivate, bearertoken,
	// password.
	Type string `mapstructure:"type"`

	// Algorithm names the credential's algorithm. Optional for
	// bearertoken; required for every other type.
	Algorithm string `mapstructure:"algorithm"`

	// Params is a base64-encoded DER parameter blob distinguishing two
	// credentials that would otherwise share (alias, type, algorithm).
	Params string `mapstructure:"params"`

	// Token is the bearertoken credential's opaque value.
	Token string `mapstructure:"token"`

	// ClearPassword is the password credential's clear-text value, used
	// only when --algorithm=clear.
	ClearPassword string `mapstructure:"clearpassword"`

	// SecretHex is a hex-encoded symmetric key for a secretkey credential.
	SecretHex string `mapstructure:"secrethex"`
}
