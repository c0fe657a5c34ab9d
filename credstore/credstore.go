// Package credstore implements a credential store backed by a conventional
// key store (github.com/pavlo-v-chernykh/keystore-go/v4): a richer model,
// in which a logical credential is identified by the tuple (alias,
// credential type, algorithm, parameters) and several such credentials may
// coexist under one alias, layered over a container that natively only
// knows secret-key, private-key-with-chain, and trusted-certificate
// entries keyed by a single alias.
package credstore

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the public façade (spec §6): Initialize, IsModifiable, Store,
// Retrieve, Remove, Flush, Aliases, all guarded by one reader-writer lock
// per spec §5. Retrieve and Aliases take the read lock; Store, Remove,
// Flush, and Initialize take the write lock — the read/write split spec §9
// flags as a known anomaly in the original source is deliberately not
// reproduced here.
type Store struct {
	mu sync.RWMutex

	log zerolog.Logger

	initialized bool
	cfg         Config
	protection  ProtectionParameter // the store's own, captured at Initialize
	eng         *engine
	idx         *index
}

// New returns a Store that is not yet initialized. log receives structured
// diagnostics, most notably the boot-scan's per-alias skip messages
// (spec §7); pass zerolog.Nop() for silence.
func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// Initialize opens (or creates) the underlying container per cfg and
// protection, then performs the tolerant boot-scan that reconstructs the
// Index (spec §2 data flow, §4.5). protection is the store's own password;
// nil means no password, matching spec §6.
func (s *Store) Initialize(cfg Config, protection ProtectionParameter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = cfg.withDefaults()

	pwBytes, err := protectionAdapterBytes(protection)
	if err != nil {
		return err
	}

	eng, err := loadOrCreate(cfg.Location, cfg.Create, cfg.KeyStoreType, pwBytes)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.protection = protection
	s.eng = eng
	s.idx = reconcile(eng, s.log)
	s.initialized = true
	return nil
}

// IsModifiable reports whether Store/Remove are permitted. Read-only after
// Initialize (spec §3 invariants).
func (s *Store) IsModifiable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized && s.cfg.Modifiable
}

// resolveProtection picks override if non-nil, else the store's own
// protection parameter captured at Initialize, and adapts either into
// password bytes (spec §6: "null means use the store's own").
func (s *Store) resolveProtection(override ProtectionParameter) ([]byte, error) {
	if override != nil {
		return protectionAdapterBytes(override)
	}
	return protectionAdapterBytes(s.protection)
}

// Store encodes credential, mints its underlying alias, writes the
// underlying entry, and updates the Index — replacing, not orphaning, any
// entry that already occupied the same (alias, type, algorithm, params)
// tuple (spec §4.4).
func (s *Store) Store(alias string, credential Credential, protection ProtectionParameter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if !s.cfg.Modifiable {
		return ErrNonModifiable
	}

	pwBytes, err := s.resolveProtection(protection)
	if err != nil {
		return err
	}

	enc, err := encodeCredential(credential)
	if err != nil {
		return err
	}

	underlying, err := encodeAlias(alias, credential.Type(), credential.Algorithm(), credential.Parameters())
	if err != nil {
		return err
	}

	if err := s.eng.write(underlying, enc, pwBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrCannotWrite, err)
	}

	aliasLC := lowerLocaleIndependent(alias)
	algLC := lowerLocaleIndependent(credential.Algorithm())
	prev, hadPrev := s.idx.put(aliasLC, credential.Type(), algLC, credential.Parameters(), underlying)
	if hadPrev && prev != underlying {
		if err := s.eng.deleteEntry(prev); err != nil {
			return fmt.Errorf("%w: orphaned replaced entry %q: %v", ErrCannotWrite, prev, err)
		}
	}

	return nil
}

// Retrieve looks up (alias, credType, algorithm, params) in the Index —
// accepting a loose type match and arbitrary algorithm/parameter selection
// per spec §4.4 — and decodes the underlying entry. A miss returns (nil,
// nil), never an error (spec §4.4: "Any missing link returns a miss").
func (s *Store) Retrieve(alias string, credType CredentialType, algorithm string, params []byte, protection ProtectionParameter) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	pwBytes, err := s.resolveProtection(protection)
	if err != nil {
		return nil, err
	}

	res, ok := s.idx.lookup(lowerLocaleIndependent(alias), credType, lowerLocaleIndependent(algorithm), params)
	if !ok {
		return nil, nil
	}

	d, err := s.eng.read(res.underlying, pwBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotRead, err)
	}

	cred, err := decodeCredential(res.matchedType, res.algorithm, res.params, d)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Remove deletes every credential matching the supplied, possibly-partial
// tuple, pruning empty mid/bottom index entries and evicting the top entry
// itself only once every credential type under it is gone — untouched
// siblings (other credential types, or other algorithms of the same type)
// survive
// (spec §4.4/§8 S2/§9; see DESIGN.md for why the source's unconditional
// top-entry eviction is fixed here rather than preserved).
func (s *Store) Remove(alias string, credType CredentialType, algorithm string, params []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if !s.cfg.Modifiable {
		return ErrNonModifiable
	}

	matches := s.idx.remove(lowerLocaleIndependent(alias), credType, lowerLocaleIndependent(algorithm), params)
	for _, m := range matches {
		if err := s.eng.deleteEntry(m.underlying); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrCannotRemove, m.underlying, err)
		}
	}
	return nil
}

// Flush serializes the underlying container to a temporary file next to
// Location and atomically renames it into place (spec §4.5). A no-op when
// Location is empty.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if s.cfg.Location == "" {
		return nil
	}

	pwBytes, err := protectionAdapterBytes(s.protection)
	if err != nil {
		return err
	}

	return flushAtomic(s.cfg.Location, pwBytes, s.eng)
}

// Aliases returns every user-facing alias currently indexed.
func (s *Store) Aliases() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	return s.idx.aliases(), nil
}
