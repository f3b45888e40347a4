// Package crypt encrypts wallet private keys before they touch the database.
// AES-256-GCM, payload format "iv:tag:ciphertext" (hex).
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const nonceSize = 16

var ErrInvalidPayload = errors.New("invalid encrypted payload format")

// ResolveKey parses a 64-char hex key from config. An empty value falls back to a
// derived dev key so local setups work without one; 生产环境必须显式配置。
func ResolveKey(keyHex string) ([]byte, error) {
	if keyHex == "" {
		sum := sha256.Sum256([]byte("fallback_dev_secret"))
		return sum[:], nil
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Encrypt seals plaintext with the given 32-byte key.
func Encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return "", err
	}

	iv := make([]byte, nonceSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	tagStart := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	), nil
}

// Decrypt opens a payload produced by Encrypt.
func Decrypt(key []byte, payload string) (string, error) {
	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return "", ErrInvalidPayload
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidPayload
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidPayload
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrInvalidPayload
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return "", err
	}
	if len(iv) != nonceSize {
		return "", ErrInvalidPayload
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
