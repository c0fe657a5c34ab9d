package credstore

import "errors"

// Sentinel errors for the taxonomy in the credential store design notes.
// Callers should compare with errors.Is; every returned error wraps one of
// these with call-specific detail via fmt.Errorf("...: %w", ErrX).
var (
	// ErrNotInitialized is returned by any operation invoked before
	// Initialize has completed successfully.
	ErrNotInitialized = errors.New("credstore: store not initialized")

	// ErrAutomaticCreationDisabled is returned by Initialize when location
	// has no file on disk and Config.Create is false.
	ErrAutomaticCreationDisabled = errors.New("credstore: no file at location and automatic creation is disabled")

	// ErrCannotInitialize wraps I/O or integrity failures while reading the
	// underlying container during Initialize.
	ErrCannotInitialize = errors.New("credstore: cannot initialize underlying container")

	// ErrCannotWrite wraps encoding or underlying setEntry failures during
	// Store.
	ErrCannotWrite = errors.New("credstore: cannot write credential")

	// ErrCannotRead wraps decoding or underlying getEntry failures during
	// Retrieve.
	ErrCannotRead = errors.New("credstore: cannot read credential")

	// ErrCannotRemove wraps underlying deleteEntry failures during Remove.
	ErrCannotRemove = errors.New("credstore: cannot remove credential")

	// ErrCannotFlush wraps I/O failures while persisting the container.
	ErrCannotFlush = errors.New("credstore: cannot flush store")

	// ErrUnsupportedCredential is returned when a credential's class or, for
	// PasswordCredential, its algorithm, is outside the closed set this
	// store knows how to encode or decode.
	ErrUnsupportedCredential = errors.New("credstore: unsupported credential")

	// ErrInvalidEntryType is returned when an underlying entry's concrete
	// kind (secret key vs private-key-with-chain) contradicts the
	// credential type indexed under its alias — tampering or a format
	// mismatch.
	ErrInvalidEntryType = errors.New("credstore: underlying entry kind does not match indexed credential type")

	// ErrInvalidProtectionParameter is returned when a supplied protection
	// parameter is not the one accepted shape (a clear-password credential
	// source, or nil).
	ErrInvalidProtectionParameter = errors.New("credstore: invalid protection parameter")

	// ErrNonModifiable is returned by Store or Remove on a store opened
	// with Config.Modifiable = false.
	ErrNonModifiable = errors.New("credstore: store is not modifiable")
)
