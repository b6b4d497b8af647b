// Package crypto implements the PII codec with ChaCha20-Poly1305. Recipient
// contact fields are sealed before they reach an aggregate; the database and
// the logs only ever see ciphertext.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCiphertextInvalid is returned when a ciphertext is truncated or fails
// authentication.
var ErrCiphertextInvalid = errors.New("ciphertext is invalid or was tampered with")

// ChaChaPIICodec implements ports.PIICodec using ChaCha20-Poly1305 with a
// random nonce prepended to each ciphertext. Identical plaintexts therefore
// never produce identical ciphertexts.
type ChaChaPIICodec struct {
	key []byte
}

// NewChaChaPIICodec creates a codec from a 32-byte key.
func NewChaChaPIICodec(key []byte) (*ChaChaPIICodec, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("pii key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &ChaChaPIICodec{key: key}, nil
}

// Encrypt seals the plaintext under a fresh random nonce.
func (c *ChaChaPIICodec) Encrypt(plaintext string) ([]byte, error) {
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func (c *ChaChaPIICodec) Decrypt(ciphertext []byte) (string, error) {
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return "", err
	}

	if len(ciphertext) < aead.NonceSize() {
		return "", ErrCiphertextInvalid
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrCiphertextInvalid
	}

	return string(plaintext), nil
}
