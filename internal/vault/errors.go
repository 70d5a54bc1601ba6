// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package vault

import "errors"

var (
	// ErrWrongMasterPassword is returned by Open when the supplied master
	// password does not match the stored key verifier.
	ErrWrongMasterPassword = errors.New("wrong master password")

	// ErrSessionClosed is returned by every operation on a closed session.
	ErrSessionClosed = errors.New("vault session is closed")

	// Sentinels matched by errors.Is for the wrapped error types below.
	ErrKeyDerivation = errors.New("key derivation failed")
	ErrStoreOpen     = errors.New("vault store open failed")
	ErrValidation    = errors.New("validation failed")
)

// ValidationError reports a rejected input field. Matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// KeyDerivationError wraps a cryptographic setup failure during unlock.
// Matches ErrKeyDerivation.
type KeyDerivationError struct {
	Err error
}

func (e *KeyDerivationError) Error() string { return "key derivation failed: " + e.Err.Error() }
func (e *KeyDerivationError) Unwrap() error { return e.Err }

func (e *KeyDerivationError) Is(target error) bool { return target == ErrKeyDerivation }

// StoreOpenError wraps a storage failure during vault opening so callers can
// distinguish it from a bad master password. Matches ErrStoreOpen.
type StoreOpenError struct {
	Err error
}

func (e *StoreOpenError) Error() string { return "failed to open vault store: " + e.Err.Error() }
func (e *StoreOpenError) Unwrap() error { return e.Err }

func (e *StoreOpenError) Is(target error) bool { return target == ErrStoreOpen }
