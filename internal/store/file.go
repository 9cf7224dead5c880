package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-autofill/internal/crypt"
	"github.com/jonathan/resume-autofill/internal/profile"
)

// FileBackend persists the whole profile as JSON in a single file. It is the
// fallback strategy for deployments without a database: the underlying I/O is
// synchronous, wrapped behind the same context-aware contract as the
// Postgres backend. With a cipher configured, the file holds an encrypted
// envelope instead of the plain document.
type FileBackend struct {
	path       string
	passphrase string

	mu     sync.Mutex // guards cipher; saves may run concurrently
	cipher *crypt.Cipher
}

// NewFile creates a file backend rooted at dir, storing the profile under
// the fixed logical key.
func NewFile(dir string) *FileBackend {
	return &FileBackend{path: filepath.Join(dir, ProfileKey+".json")}
}

// NewFileAt creates a file backend with an explicit file path.
func NewFileAt(path string) *FileBackend {
	return &FileBackend{path: path}
}

// WithCipher enables at-rest encryption for the backend and returns it.
func (b *FileBackend) WithCipher(c *crypt.Cipher) *FileBackend {
	b.mu.Lock()
	b.cipher = c
	b.mu.Unlock()
	return b
}

// WithPassphrase enables at-rest encryption with a scrypt-derived key. The
// salt travels in the stored envelope, so the key is re-derived on load.
func (b *FileBackend) WithPassphrase(passphrase string) *FileBackend {
	b.passphrase = passphrase
	return b
}

// encrypted reports whether the backend stores envelopes rather than plain
// documents.
func (b *FileBackend) encrypted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cipher != nil || b.passphrase != ""
}

// loadCipher returns the cipher for opening env.
func (b *FileBackend) loadCipher(env *crypt.Envelope) (*crypt.Cipher, error) {
	b.mu.Lock()
	cached := b.cipher
	b.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	salt, err := crypt.DecodeSalt(env)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		return nil, fmt.Errorf("stored envelope has no salt for passphrase decryption")
	}
	return crypt.FromPassphrase(b.passphrase, salt)
}

// saveCipher returns the cipher for sealing. In passphrase mode the derived
// cipher is cached under the lock, so concurrent first saves agree on one
// salt and a later load can always open the instance's own envelopes.
func (b *FileBackend) saveCipher() (*crypt.Cipher, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cipher != nil {
		return b.cipher, nil
	}
	c, err := crypt.FromPassphrase(b.passphrase, nil)
	if err != nil {
		return nil, err
	}
	b.cipher = c
	return c, nil
}

// Name implements Backend.
func (b *FileBackend) Name() string {
	return "file"
}

// Path returns the backing file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load implements Backend. A missing file means no profile was ever saved.
func (b *FileBackend) Load(ctx context.Context) (*profile.Data, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read profile file: %w", err)
	}

	var d profile.Data
	if b.encrypted() {
		var env crypt.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, false, fmt.Errorf("failed to parse encrypted profile: %w", err)
		}
		cipher, err := b.loadCipher(&env)
		if err != nil {
			return nil, false, err
		}
		if err := cipher.DecryptJSON(&env, &d); err != nil {
			return nil, false, fmt.Errorf("failed to decrypt profile: %w", err)
		}
		return &d, true, nil
	}

	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false, fmt.Errorf("failed to parse profile file: %w", err)
	}
	return &d, true, nil
}

// Save implements Backend.
func (b *FileBackend) Save(ctx context.Context, d *profile.Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var raw []byte
	var err error
	if b.encrypted() {
		cipher, cerr := b.saveCipher()
		if cerr != nil {
			return cerr
		}
		env, encErr := cipher.EncryptJSON(d)
		if encErr != nil {
			return fmt.Errorf("failed to encrypt profile: %w", encErr)
		}
		raw, err = json.MarshalIndent(env, "", "  ")
	} else {
		raw, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(b.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}

// Clear implements Backend. Clearing a never-written backend succeeds.
func (b *FileBackend) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile file: %w", err)
	}
	return nil
}
