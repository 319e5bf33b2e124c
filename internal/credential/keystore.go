// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credential resolves and stores the generative-language API key.
//
// Resolution order:
//  1. Persisted key (~/.finmentor/credentials, encrypted at rest)
//  2. Environment variable (GEMINI_API_KEY, with optional .env loading)
//  3. None
//
// The key value is never logged; use Fingerprint for display.
package credential

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/finmentor/finmentor-tui/internal/util"
)

// =============================================================================
// KEYSTORE
// =============================================================================

// KeyStore stores the master encryption key protecting the persisted
// credential.
type KeyStore interface {
	// Store securely stores the master key.
	Store(key []byte) error
	// Retrieve reads the master key.
	Retrieve() ([]byte, error)
	// Delete removes the master key.
	Delete() error
	// Exists reports whether a master key is stored.
	Exists() bool
}

// FileKeyStore keeps the master key in a file with restricted permissions.
type FileKeyStore struct {
	path string
}

// NewFileKeyStore creates a file-based key store.
func NewFileKeyStore(path string) *FileKeyStore {
	return &FileKeyStore{path: path}
}

// Store saves the key with owner-only permissions.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func (f *FileKeyStore) Store(key []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	if err := util.AtomicWriteFile(f.path, key, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// Retrieve reads the key from the file.
func (f *FileKeyStore) Retrieve() ([]byte, error) {
	key, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return key, nil
}

// Delete removes the key file.
func (f *FileKeyStore) Delete() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key file: %w", err)
	}
	return nil
}

// Exists checks if the key file exists.
func (f *FileKeyStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// generateMasterKey returns a fresh random master key.
func generateMasterKey() ([]byte, error) {
	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// zeroBytes zeros sensitive byte slices.
// SECURITY: Zero key material to prevent memory disclosure via crash dumps.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
