// Package crypt provides at-rest encryption for serialized profiles using
// AES-256-GCM. Encrypted payloads are a JSON envelope with base64 ciphertext
// and nonce; key files hold the base64-encoded 32-byte key.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// nonceSize is the GCM nonce length in bytes.
const nonceSize = 12

// scrypt parameters for passphrase-derived keys.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Envelope is the serialized form of an encrypted payload.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt,omitempty"` // present only for passphrase-derived keys
}

// KeyError indicates an invalid or unreadable key.
type KeyError struct {
	Message string
	Cause   error
}

func (e *KeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("key error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("key error: %s", e.Message)
}

func (e *KeyError) Unwrap() error {
	return e.Cause
}

// DecryptError indicates a payload that could not be decrypted, typically a
// wrong key or a tampered envelope.
type DecryptError struct {
	Message string
	Cause   error
}

func (e *DecryptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decrypt error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decrypt error: %s", e.Message)
}

func (e *DecryptError) Unwrap() error {
	return e.Cause
}

// Cipher encrypts and decrypts profile payloads with a fixed key.
type Cipher struct {
	key  []byte
	aead cipher.AEAD
	salt []byte // non-nil when the key was derived from a passphrase
}

// New creates a Cipher from a raw 32-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, &KeyError{Message: fmt.Sprintf("key must be exactly %d bytes, got %d", KeySize, len(key))}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &KeyError{Message: "failed to initialize AES", Cause: err}
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &KeyError{Message: "failed to initialize GCM", Cause: err}
	}

	return &Cipher{key: key, aead: aead}, nil
}

// Generate creates a Cipher with a fresh random key.
func Generate() (*Cipher, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, &KeyError{Message: "failed to generate key", Cause: err}
	}
	return New(key)
}

// FromPassphrase derives a key from a passphrase with scrypt. When salt is
// nil a fresh random salt is generated; the salt is recorded in every
// envelope so the key can be re-derived on decrypt.
func FromPassphrase(passphrase string, salt []byte) (*Cipher, error) {
	if passphrase == "" {
		return nil, &KeyError{Message: "passphrase is empty"}
	}
	if salt == nil {
		salt = make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, &KeyError{Message: "failed to generate salt", Cause: err}
		}
	}

	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, &KeyError{Message: "scrypt derivation failed", Cause: err}
	}

	c, err := New(key)
	if err != nil {
		return nil, err
	}
	c.salt = salt
	return c, nil
}

// Key returns the raw key bytes.
func (c *Cipher) Key() []byte {
	return c.key
}

// Encrypt seals plaintext into an envelope with a fresh random nonce.
func (c *Cipher) Encrypt(plaintext []byte) (*Envelope, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	env := &Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
	}
	if c.salt != nil {
		env.Salt = base64.StdEncoding.EncodeToString(c.salt)
	}
	return env, nil
}

// Decrypt opens an envelope and returns the plaintext.
func (c *Cipher) Decrypt(env *Envelope) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, &DecryptError{Message: "invalid base64 ciphertext", Cause: err}
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, &DecryptError{Message: "invalid base64 nonce", Cause: err}
	}
	if len(nonce) != nonceSize {
		return nil, &DecryptError{Message: fmt.Sprintf("nonce must be %d bytes, got %d", nonceSize, len(nonce))}
	}

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, &DecryptError{Message: "authentication failed", Cause: err}
	}
	return plaintext, nil
}

// DecodeSalt returns the raw salt recorded in a passphrase envelope, or nil
// when the envelope was sealed with a direct key.
func DecodeSalt(env *Envelope) ([]byte, error) {
	if env.Salt == "" {
		return nil, nil
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, &DecryptError{Message: "invalid base64 salt", Cause: err}
	}
	return salt, nil
}

// EncryptJSON marshals v and seals it.
func (c *Cipher) EncryptJSON(v any) (*Envelope, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.Encrypt(raw)
}

// DecryptJSON opens env and unmarshals the plaintext into v.
func (c *Cipher) DecryptJSON(env *Envelope, v any) error {
	plaintext, err := c.Decrypt(env)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return &DecryptError{Message: "plaintext is not valid JSON", Cause: err}
	}
	return nil
}

// SaveKey writes the base64-encoded key to path with owner-only permissions.
func (c *Cipher) SaveKey(path string) error {
	encoded := base64.StdEncoding.EncodeToString(c.key)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return &KeyError{Message: "failed to write key file", Cause: err}
	}
	return nil
}

// LoadKey reads a base64-encoded key file written by SaveKey.
func LoadKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &KeyError{Message: "failed to read key file", Cause: err}
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, &KeyError{Message: "key file is not valid base64", Cause: err}
	}
	if len(key) != KeySize {
		return nil, &KeyError{Message: fmt.Sprintf("key must be exactly %d bytes, got %d", KeySize, len(key))}
	}
	return key, nil
}

// LoadOrCreate loads the key at path, or generates and saves a fresh one when
// the file does not exist.
func LoadOrCreate(path string) (*Cipher, error) {
	if _, err := os.Stat(path); err == nil {
		key, err := LoadKey(path)
		if err != nil {
			return nil, err
		}
		return New(key)
	}

	c, err := Generate()
	if err != nil {
		return nil, err
	}
	if err := c.SaveKey(path); err != nil {
		return nil, err
	}
	return c, nil
}
