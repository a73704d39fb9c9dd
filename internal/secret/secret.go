// Package secret encrypts small values stored at rest, such as account numbers.
package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken is returned when a token cannot be verified with any configured key.
var ErrInvalidToken = errors.New("invalid or tampered token")

// Box encrypts with the first key and decrypts with any of them, so keys can be rotated
// by prepending the new key to ENCRYPTION_KEY.
type Box struct {
	keys []*fernet.Key
}

// NewBox parses a comma separated list of base64 Fernet keys.
func NewBox(encodedKeys string) (*Box, error) {
	parts := strings.Split(encodedKeys, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	keys, err := fernet.DecodeKeys(parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &Box{keys: keys}, nil
}

// GenerateKey returns a new random key in the encoding NewBox expects.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return k.Encode(), nil
}

// Encrypt returns a Fernet token for plaintext.
func (b *Box) Encrypt(plaintext string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(plaintext), b.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return string(tok), nil
}

// Decrypt verifies and decrypts a token produced by Encrypt. Tokens do not expire.
func (b *Box) Decrypt(token string) (string, error) {
	// A negative ttl disables the timestamp check.
	msg := fernet.VerifyAndDecrypt([]byte(token), -1, b.keys)
	if msg == nil {
		return "", ErrInvalidToken
	}
	return string(msg), nil
}

// Mask keeps the last four characters of value and replaces the rest with '*'.
func Mask(value string) string {
	if len(value) <= 4 {
		return value
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
