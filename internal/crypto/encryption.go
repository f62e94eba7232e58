// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
)

// ErrCiphertextTooShort is returned for sealed values shorter than a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Encryption is the built-in encryption component.
type Encryption struct {
	key []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewEncryption derives the data key from passphrase and salt using
// Argon2id with the parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
//
// An empty passphrase gives a random key that lives as long as the
// component, enough for values sealed and opened within one process.
func NewEncryption(passphrase string, salt []byte) (*Encryption, error) {
	e := &Encryption{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}

	if passphrase == "" {
		key := make([]byte, e.argonKeyLen)
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		e.key = key
		return e, nil
	}

	e.key = e.deriveKey(passphrase, salt)
	return e, nil
}

func (e *Encryption) deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		e.argonTime,
		e.argonMemory,
		e.argonThreads,
		e.argonKeyLen,
	)
}

// Encrypt implements [Encrypter].
func (e *Encryption) Encrypt(plaintext []byte) (string, error) {
	gcm, err := e.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Decrypt can split it out.
	blob := append(nonce, gcm.Seal(nil, nonce, plaintext, nil)...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Encrypter].
func (e *Encryption) Decrypt(sealed string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	gcm, err := e.gcm()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// An error here almost always means a different key.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// EncryptValue implements [Encrypter].
func (e *Encryption) EncryptValue(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}
	return e.Encrypt(plaintext)
}

// DecryptValue implements [Encrypter].
func (e *Encryption) DecryptValue(sealed string, target any) error {
	plaintext, err := e.Decrypt(sealed)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}

// Method exposes "Encrypt" and "Decrypt" as callbacks taking and returning
// strings.
func (e *Encryption) Method(name string) (callback.Func, bool) {
	switch name {
	case "Encrypt":
		return func(_ context.Context, args ...any) (any, error) {
			s, err := stringArg(args)
			if err != nil {
				return nil, err
			}
			return e.Encrypt([]byte(s))
		}, true
	case "Decrypt":
		return func(_ context.Context, args ...any) (any, error) {
			s, err := stringArg(args)
			if err != nil {
				return nil, err
			}
			plaintext, err := e.Decrypt(s)
			if err != nil {
				return nil, err
			}
			return string(plaintext), nil
		}, true
	}
	return nil, false
}

func (e *Encryption) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

func stringArg(args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected one argument, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("expected string argument, got %T", args[0])
	}
	return s, nil
}
