package credstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// knownCredentialTypes is the closed set spec §3 enumerates. A boot-scan
// alias whose credential_type_token decodes to anything else is treated the
// same as an unparseable alias: logged and skipped, never overwritten.
var knownCredentialTypes = map[CredentialType]bool{
	TypeSecretKey:        true,
	TypePublicKey:        true,
	TypeKeyPair:          true,
	TypeX509ChainPublic:  true,
	TypeX509ChainPrivate: true,
	TypeBearerToken:      true,
	TypePassword:         true,
}

// loadOrCreate implements the Initialize half of Persistence (spec §4.5):
// if location exists, load it under password; otherwise, if create is set,
// start empty; otherwise ErrAutomaticCreationDisabled. An empty location
// always means in-memory only, and create is irrelevant to it.
func loadOrCreate(location string, create bool, keyStoreType string, password []byte) (*engine, error) {
	eng, err := newEngine(keyStoreType)
	if err != nil {
		return nil, err
	}

	if location == "" {
		return eng, nil
	}

	f, err := os.Open(location)
	switch {
	case err == nil:
		defer f.Close()
		if loadErr := eng.load(f, password); loadErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCannotInitialize, location, loadErr)
		}
		return eng, nil
	case os.IsNotExist(err):
		if !create {
			return nil, fmt.Errorf("%w: %s", ErrAutomaticCreationDisabled, location)
		}
		return eng, nil
	default:
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotInitialize, location, err)
	}
}

// reconcile implements the tolerant boot-scan (spec §2 data flow, §4.5,
// §7 propagation policy): it walks every underlying alias, parses it with
// AliasCodec, and — on any failure to parse or any kind mismatch — logs and
// skips that single alias rather than failing Initialize. Every other
// alias is indexed normally.
func reconcile(eng *engine, log zerolog.Logger) *index {
	idx := newIndex()
	for _, underlying := range eng.aliases() {
		ea, ok := decodeAlias(underlying)
		if !ok {
			log.Warn().Str("underlyingAlias", underlying).Msg("credstore: skipping alias that does not match the encoding grammar")
			continue
		}
		if !knownCredentialTypes[ea.credType] {
			log.Warn().Str("underlyingAlias", underlying).Str("credentialType", string(ea.credType)).
				Msg("credstore: skipping alias with unrecognized credential type")
			continue
		}
		params, err := decodeParams(ea.paramsB32)
		if err != nil {
			log.Warn().Str("underlyingAlias", underlying).Err(err).
				Msg("credstore: skipping alias with malformed parameter payload")
			continue
		}
		if eng.kindOf(underlying) != expectedKind(ea.credType) {
			log.Warn().Str("underlyingAlias", underlying).Str("credentialType", string(ea.credType)).
				Msg("credstore: skipping alias whose entry kind contradicts its credential type")
			continue
		}
		idx.put(ea.aliasLC, ea.credType, ea.algLC, params, underlying)
	}
	return idx
}

// flushAtomic implements spec §4.5's atomic-replace: serialize to a
// temporary file next to location, then rename over it. On any failure the
// temporary file is removed and location is left untouched. The temp name
// carries a uuid suffix, the same collision-free naming device the teacher
// codebase reaches for elsewhere (cmd/build.go's feed URNs) instead of a
// hand-rolled counter or PID.
func flushAtomic(location string, password []byte, eng *engine) (err error) {
	dir := filepath.Dir(location)
	tmpPath := filepath.Join(dir, filepath.Base(location)+".tmp-"+uuid.NewString())

	f, createErr := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if createErr != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrCannotFlush, createErr)
	}

	defer func() {
		// Cancellation of the temporary stream must not mask the primary
		// failure (spec §4.5): if err is already set, any error here is
		// recorded as its chained cause rather than overwriting it.
		if err != nil {
			if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
				err = fmt.Errorf("%w (cleanup also failed: %w)", err, removeErr)
			}
		}
	}()

	if storeErr := eng.flush(f, password); storeErr != nil {
		f.Close()
		return fmt.Errorf("%w: serialize container: %v", ErrCannotFlush, storeErr)
	}

	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrCannotFlush, closeErr)
	}

	if renameErr := os.Rename(tmpPath, location); renameErr != nil {
		return fmt.Errorf("%w: rename into place: %v", ErrCannotFlush, renameErr)
	}

	return nil
}
