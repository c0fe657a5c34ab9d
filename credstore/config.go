package credstore

// Config holds the recognized initialization options (spec §6). Unknown
// keys passed in from a higher-level attribute map are ignored silently by
// whatever binds them onto Config (see the cmd/ package for the cobra/viper
// binding); Config itself only ever sees the four fields below.
type Config struct {
	// Location is the filesystem path persistence reads from and flushes
	// to. Empty means in-memory only — Flush becomes a no-op.
	Location string `mapstructure:"location"`

	// Modifiable gates Store and Remove. Read-only after Initialize.
	Modifiable bool `mapstructure:"modifiable"`

	// Create allows Initialize to start an empty container when Location
	// is set but no file exists there yet. Ignored when Location is empty.
	Create bool `mapstructure:"create"`

	// KeyStoreType selects the underlying container engine. The only
	// accepted values are "" and "jceks" (see engine.go); anything else
	// fails Initialize with ErrCannotInitialize.
	KeyStoreType string `mapstructure:"keystoretype"`
}

// withDefaults returns a copy of c with zero-value fields defaulted per the
// spec §6 table. Modifiable's default is true, which a bare zero-value
// Config cannot express, so DefaultConfig should be preferred by callers
// that want the documented defaults; withDefaults only fills KeyStoreType.
func (c Config) withDefaults() Config {
	if c.KeyStoreType == "" {
		c.KeyStoreType = defaultKeyStoreType
	}
	return c
}

// DefaultConfig returns a Config with every field at its spec §6 default:
// in-memory, modifiable, no automatic creation, default engine.
func DefaultConfig() Config {
	return Config{
		Modifiable:   true,
		KeyStoreType: defaultKeyStoreType,
	}
}
