package badgerstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// Encryption errors.
var (
	ErrPassphraseTooWeak = errors.New("badgerstore: passphrase too weak (minimum 8 characters)")
	ErrDecryptionFailed  = errors.New("badgerstore: decryption failed - wrong passphrase or corrupted data")
)

const (
	// MinPassphraseLength is the minimum passphrase length.
	MinPassphraseLength = 8

	// saltLength is the persisted salt length for key derivation.
	saltLength = 16

	// saltFile holds the key-derivation salt inside the store directory.
	// The salt is not secret; persisting it keeps derived keys stable
	// across runs.
	saltFile = "salt"

	// Argon2id parameters for key derivation from passphrase.
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// Algorithms supported for at-rest encryption.
const (
	AlgorithmAESGCM   = "aes-gcm"
	AlgorithmChaCha20 = "chacha20-poly1305"
)

// recordCipher seals and opens stored record payloads.
type recordCipher struct {
	aead cipher.AEAD
}

// newCipher derives an AEAD from passphrase and the salt persisted in dir,
// creating the salt on first use.
func newCipher(dir, algorithm string, passphrase []byte) (*recordCipher, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrPassphraseTooWeak
	}

	salt, err := loadOrCreateSalt(filepath.Join(dir, saltFile))
	if err != nil {
		return nil, err
	}

	key := argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	var aead cipher.AEAD
	switch algorithm {
	case AlgorithmChaCha20:
		aead, err = chacha20poly1305.New(key)
	case AlgorithmAESGCM, "":
		var block cipher.Block
		block, err = aes.NewCipher(key)
		if err == nil {
			aead, err = cipher.NewGCM(block)
		}
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unknown encryption algorithm " + algorithm)
	}
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("init cipher").WithCause(err)
	}

	return &recordCipher{aead: aead}, nil
}

// Seal encrypts plaintext. Output layout: nonce || ciphertext.
func (c *recordCipher) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, domain.ErrStorage.WithDetails("generate nonce").WithCause(err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func (c *recordCipher) Open(data []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(data) < ns {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := c.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// loadOrCreateSalt reads the persisted salt, generating it on first use.
func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) != saltLength {
			return nil, domain.ErrStorage.WithDetails("corrupt salt file " + path)
		}
		return salt, nil
	}
	if !os.IsNotExist(err) {
		return nil, domain.ErrStorage.WithDetails("read salt file").WithCause(err)
	}

	salt = make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, domain.ErrStorage.WithDetails("generate salt").WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, domain.ErrStorage.WithDetails("create store directory").WithCause(err)
	}
	if err := os.WriteFile(path, salt, 0600); err != nil {
		return nil, domain.ErrStorage.WithDetails("write salt file").WithCause(err)
	}
	return salt, nil
}
