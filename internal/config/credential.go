package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"
)

const (
	keyringService = "copilotdesk"
	// APIKeyItem is the keyring item holding the Gemini API key
	APIKeyItem = "gemini-api-key"
	// APIKeyEnv is the environment variable consulted before the keyring
	APIKeyEnv = "GEMINI_API_KEY"
)

// KeySource says where a resolved API key came from
type KeySource string

const (
	KeySourceNone    KeySource = "none"
	KeySourceFlag    KeySource = "flag"
	KeySourceEnv     KeySource = "env"
	KeySourceKeyring KeySource = "keyring"
)

// OpenKeyring opens the OS keyring, falling back to an encrypted file under
// the config directory.
func OpenKeyring() (keyring.Keyring, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("copilotdesk-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Credentials resolves and stores the Gemini API key
type Credentials struct {
	ring   keyring.Keyring
	getenv func(string) string
}

// NewCredentials creates Credentials over ring. ring may be nil when no
// keyring backend is available; only the flag and environment are consulted.
func NewCredentials(ring keyring.Keyring) *Credentials {
	return &Credentials{ring: ring, getenv: os.Getenv}
}

// ResolveAPIKey returns the first non-empty key from the flag value, the
// GEMINI_API_KEY environment variable and the keyring. A missing key is not
// an error.
func (c *Credentials) ResolveAPIKey(flagValue string) (string, KeySource) {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key, KeySourceFlag
	}
	if key := strings.TrimSpace(c.getenv(APIKeyEnv)); key != "" {
		return key, KeySourceEnv
	}
	if c.ring != nil {
		if item, err := c.ring.Get(APIKeyItem); err == nil {
			if key := strings.TrimSpace(string(item.Data)); key != "" {
				return key, KeySourceKeyring
			}
		}
	}
	return "", KeySourceNone
}

// SetAPIKey stores key in the keyring
func (c *Credentials) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if c.ring == nil {
		return errors.New("no keyring backend available")
	}

	err := c.ring.Set(keyring.Item{
		Key:         APIKeyItem,
		Data:        []byte(key),
		Label:       "copilotdesk Gemini API key",
		Description: "API key for the Gemini generateContent endpoint",
	})
	if err != nil {
		return fmt.Errorf("storing API key: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the stored key. Removing an absent key succeeds.
func (c *Credentials) DeleteAPIKey() error {
	if c.ring == nil {
		return errors.New("no keyring backend available")
	}
	if err := c.ring.Remove(APIKeyItem); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting API key: %w", err)
	}
	return nil
}

// MaskKey hides all but the last four characters of key
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
