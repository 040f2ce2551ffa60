// Package envelope implements authenticated symmetric encryption for
// message bodies: AES-256-GCM with a 128-bit random IV and a 128-bit
// authentication tag, bound to a fixed application-level associated-data
// string. Decryption fails closed: no partial output is ever returned.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"opsroom/errors"
)

const (
	KeySize   = 32 // 256-bit key
	NonceSize = 16 // 128-bit IV
	TagSize   = 16 // 128-bit authentication tag

	// associatedData binds every ciphertext to this application.
	associatedData = "opsroom-message"
)

// Envelope carries one encrypted message. All four fields are mandatory
// and hex-encoded.
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	Key        string `json:"key"`
	IV         string `json:"iv"`
	AuthTag    string `json:"authTag"`
}

// GenerateKey produces cryptographically random 256-bit key material,
// hex-encoded.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("key generation: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Cipher encrypts and decrypts envelopes. It is stateless apart from the
// process-wide default key loaded once at startup, and safe for concurrent
// use.
type Cipher struct {
	defaultKey []byte
}

// NewCipher validates the hex-encoded default key used for at-rest
// encryption. It is called once at startup and fails fast on a missing or
// wrong-length secret.
func NewCipher(defaultKeyHex string) (*Cipher, error) {
	key, err := hex.DecodeString(defaultKeyHex)
	if err != nil {
		return nil, fmt.Errorf("default encryption key is not valid hex: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("default encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	return &Cipher{defaultKey: key}, nil
}

// Encrypt seals plaintext with the process-wide default key.
func (c *Cipher) Encrypt(plaintext string) (Envelope, error) {
	return seal(plaintext, c.defaultKey)
}

// EncryptE2E seals plaintext with a fresh per-message key, so compromise of
// one message's key does not expose others. The generated key is included
// in the returned envelope; transmitting it to authorized viewers is the
// caller's responsibility.
func (c *Cipher) EncryptE2E(plaintext string) (Envelope, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return Envelope{}, fmt.Errorf("per-message key generation: %w", err)
	}
	return seal(plaintext, key)
}

// Decrypt opens an envelope. It returns errors.ErrDecryption when any hex
// field is malformed, the key length is wrong, or the authentication tag
// does not verify. GCM's tag check is constant-time.
func (c *Cipher) Decrypt(env Envelope) (string, error) {
	key, err := decodeField(env.Key, "key")
	if err != nil {
		return "", err
	}
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: key must be %d bytes", errors.ErrDecryption, KeySize)
	}
	iv, err := decodeField(env.IV, "iv")
	if err != nil {
		return "", err
	}
	if len(iv) != NonceSize {
		return "", fmt.Errorf("%w: iv must be %d bytes", errors.ErrDecryption, NonceSize)
	}
	ciphertext, err := decodeField(env.Ciphertext, "ciphertext")
	if err != nil {
		return "", err
	}
	tag, err := decodeField(env.AuthTag, "authTag")
	if err != nil {
		return "", err
	}
	if len(tag) != TagSize {
		return "", fmt.Errorf("%w: authTag must be %d bytes", errors.ErrDecryption, TagSize)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDecryption, err)
	}
	plaintext, err := aead.Open(nil, iv, append(ciphertext, tag...), []byte(associatedData))
	if err != nil {
		return "", fmt.Errorf("%w: authentication tag mismatch", errors.ErrDecryption)
	}
	return string(plaintext), nil
}

func seal(plaintext string, key []byte) (Envelope, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return Envelope{}, err
	}
	iv := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return Envelope{}, fmt.Errorf("iv generation: %w", err)
	}
	sealed := aead.Seal(nil, iv, []byte(plaintext), []byte(associatedData))

	// Seal appends the tag to the ciphertext; the wire format keeps them
	// as separate fields.
	split := len(sealed) - TagSize
	return Envelope{
		Ciphertext: hex.EncodeToString(sealed[:split]),
		Key:        hex.EncodeToString(key),
		IV:         hex.EncodeToString(iv),
		AuthTag:    hex.EncodeToString(sealed[split:]),
	}, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

func decodeField(value, name string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s is missing", errors.ErrDecryption, name)
	}
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", errors.ErrDecryption, name)
	}
	return raw, nil
}
