// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package credential

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/pbkdf2"

	"github.com/finmentor/finmentor-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// EnvVar is the environment variable checked for an API key.
const EnvVar = "GEMINI_API_KEY"

const (
	// encryptedPrefix marks a persisted value as encrypted
	// (format: ENC:base64(salt|nonce|ciphertext)).
	encryptedPrefix = "ENC:"

	// nonceSize is the AES-GCM nonce size (96 bits).
	nonceSize = 12

	// keySize is the AES-256 key size.
	keySize = 32

	// saltSize is the key-derivation salt size.
	saltSize = 32

	// masterKeySize is the size of the random master key.
	masterKeySize = 32

	// pbkdf2Iterations for deriving the encryption key from the master key.
	pbkdf2Iterations = 600_000
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoCredential indicates no key is available from any source.
	ErrNoCredential = errors.New("no API key configured")

	// ErrCorruptCredential indicates the persisted credential could not be
	// decrypted.
	ErrCorruptCredential = errors.New("persisted credential is corrupt")
)

// =============================================================================
// CREDENTIAL
// =============================================================================

// Source identifies where a credential came from.
type Source string

const (
	// SourcePersisted means the key was read from the encrypted store.
	SourcePersisted Source = "persisted"
	// SourceEnv means the key came from the environment.
	SourceEnv Source = "env"
	// SourceNone means no key is available.
	SourceNone Source = "none"
)

// Credential is a resolved API key and its provenance. A credential with
// Source == SourceNone has an empty Value.
type Credential struct {
	Value  string
	Source Source
}

// Present reports whether the credential carries a usable key.
func (c Credential) Present() bool {
	return c.Source != SourceNone && c.Value != ""
}

// Fingerprint returns a short non-reversible identifier for display and
// logging. The raw value must never appear in logs.
func (c Credential) Fingerprint() string {
	return Fingerprint(c.Value)
}

// Fingerprint hashes a key value down to an 8-hex-char tag.
func Fingerprint(value string) string {
	if value == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("sha256:%x", sum[:4])
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store resolves, persists, and clears the API key. Implementations must be
// safe for use from a single goroutine at a time.
type Store interface {
	// Resolve returns the current credential, never an error for "not found":
	// absence is reported as SourceNone.
	Resolve() (Credential, error)

	// Set persists a key, replacing any previous one.
	Set(value string) error

	// Clear removes the persisted key. Environment keys are unaffected.
	Clear() error
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists the key encrypted at rest under the config directory,
// falling back to the GEMINI_API_KEY environment variable.
type FileStore struct {
	path     string
	keystore KeyStore
	lookup   func(string) (string, bool)
}

// NewFileStore creates a store rooted at dir (typically ~/.finmentor).
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		path:     filepath.Join(dir, "credentials"),
		keystore: NewFileKeyStore(filepath.Join(dir, "master.key")),
		lookup:   os.LookupEnv,
	}
}

// LoadDotEnv loads a .env file into the process environment if present.
// Existing variables are not overwritten.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Resolve returns the persisted key when present, then the environment key,
// then SourceNone.
func (s *FileStore) Resolve() (Credential, error) {
	value, err := s.readPersisted()
	if err != nil {
		return Credential{Source: SourceNone}, err
	}
	if value != "" {
		return Credential{Value: value, Source: SourcePersisted}, nil
	}

	if env, ok := s.lookup(EnvVar); ok && strings.TrimSpace(env) != "" {
		return Credential{Value: strings.TrimSpace(env), Source: SourceEnv}, nil
	}

	return Credential{Source: SourceNone}, nil
}

// Set encrypts and persists a key.
func (s *FileStore) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("API key must not be empty")
	}

	master, err := s.masterKey()
	if err != nil {
		return err
	}
	defer zeroBytes(master)

	sealed, err := encrypt([]byte(value), master)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.path, []byte(sealed), 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Clear removes the persisted key and its master key.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return s.keystore.Delete()
}

// readPersisted returns the decrypted persisted key, or "" when none exists.
func (s *FileStore) readPersisted() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}

	sealed := strings.TrimSpace(string(data))
	if sealed == "" {
		return "", nil
	}

	master, err := s.keystore.Retrieve()
	if err != nil {
		return "", fmt.Errorf("%w: master key unavailable", ErrCorruptCredential)
	}
	defer zeroBytes(master)

	plain, err := decrypt(sealed, master)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// masterKey returns the stored master key, generating one on first use.
func (s *FileStore) masterKey() ([]byte, error) {
	if s.keystore.Exists() {
		return s.keystore.Retrieve()
	}
	key, err := generateMasterKey()
	if err != nil {
		return nil, err
	}
	if err := s.keystore.Store(key); err != nil {
		zeroBytes(key)
		return nil, err
	}
	return key, nil
}

// =============================================================================
// STATIC STORE
// =============================================================================

// StaticStore returns a fixed credential. Used in tests and for one-shot
// invocations with an explicit key.
type StaticStore struct {
	Credential Credential
}

// NewStaticStore creates a store that always resolves to the given value.
func NewStaticStore(value string) *StaticStore {
	if strings.TrimSpace(value) == "" {
		return &StaticStore{Credential: Credential{Source: SourceNone}}
	}
	return &StaticStore{Credential: Credential{Value: value, Source: SourceEnv}}
}

// Resolve returns the fixed credential.
func (s *StaticStore) Resolve() (Credential, error) { return s.Credential, nil }

// Set replaces the fixed credential.
func (s *StaticStore) Set(value string) error {
	s.Credential = Credential{Value: value, Source: SourcePersisted}
	return nil
}

// Clear drops the fixed credential.
func (s *StaticStore) Clear() error {
	s.Credential = Credential{Source: SourceNone}
	return nil
}

// =============================================================================
// ENCRYPTION
// =============================================================================

// encrypt seals plaintext as ENC:base64(salt|nonce|ciphertext) using
// AES-256-GCM with a PBKDF2-derived key.
func encrypt(plaintext, master []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key(master, salt, pbkdf2Iterations, keySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	buf := make([]byte, 0, saltSize+nonceSize+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)

	return encryptedPrefix + base64.StdEncoding.EncodeToString(buf), nil
}

// decrypt reverses encrypt.
func decrypt(sealed string, master []byte) ([]byte, error) {
	if !strings.HasPrefix(sealed, encryptedPrefix) {
		return nil, fmt.Errorf("%w: missing prefix", ErrCorruptCredential)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, encryptedPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
	if len(raw) < saltSize+nonceSize+1 {
		return nil, fmt.Errorf("%w: truncated", ErrCorruptCredential)
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+nonceSize]
	ciphertext := raw[saltSize+nonceSize:]

	key := pbkdf2.Key(master, salt, pbkdf2Iterations, keySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decryption failed", ErrCorruptCredential)
	}
	return plain, nil
}
