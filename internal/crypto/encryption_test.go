package crypto

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
)

func TestNewEncryption_DeterministicKeyForSamePassphrase(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, 16)

	e1, err := NewEncryption("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("NewEncryption error: %v", err)
	}
	e2, err := NewEncryption("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("NewEncryption error: %v", err)
	}

	if len(e1.key) != 32 {
		t.Fatalf("key length = %d, want 32", len(e1.key))
	}
	if !bytes.Equal(e1.key, e2.key) {
		t.Fatalf("expected keys to match for same passphrase+salt")
	}

	sealed, err := e1.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	plain, err := e2.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if string(plain) != "secret" {
		t.Fatalf("Decrypt = %q, want %q", plain, "secret")
	}
}

func TestNewEncryption_DifferentSaltProducesDifferentKey(t *testing.T) {
	e1, _ := NewEncryption("same password", bytes.Repeat([]byte{0x01}, 16))
	e2, _ := NewEncryption("same password", bytes.Repeat([]byte{0x02}, 16))

	if bytes.Equal(e1.key, e2.key) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestNewEncryption_EmptyPassphraseIsRandom(t *testing.T) {
	e1, err := NewEncryption("", nil)
	if err != nil {
		t.Fatalf("NewEncryption error: %v", err)
	}
	e2, err := NewEncryption("", nil)
	if err != nil {
		t.Fatalf("NewEncryption error: %v", err)
	}
	if bytes.Equal(e1.key, e2.key) {
		t.Fatalf("expected random keys to differ")
	}
}

func TestEncrypt_NonceRandomness(t *testing.T) {
	e, _ := NewEncryption("", nil)

	s1, err := e.Encrypt([]byte("same"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	s2, err := e.Encrypt([]byte("same"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected different sealed values for two encryptions")
	}
}

func TestDecrypt_Failures(t *testing.T) {
	e, _ := NewEncryption("", nil)
	other, _ := NewEncryption("", nil)

	sealed, _ := other.Encrypt([]byte("x"))

	cases := map[string]string{
		"not base64": "%%%",
		"too short":  base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
		"wrong key":  sealed,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := e.Decrypt(input); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestEncryptValue_DecryptValue(t *testing.T) {
	e, _ := NewEncryption("", nil)

	type payload struct {
		User string `json:"user"`
		Age  int    `json:"age"`
	}

	sealed, err := e.EncryptValue(payload{User: "demo", Age: 7})
	if err != nil {
		t.Fatalf("EncryptValue error: %v", err)
	}

	var got payload
	if err := e.DecryptValue(sealed, &got); err != nil {
		t.Fatalf("DecryptValue error: %v", err)
	}
	if got.User != "demo" || got.Age != 7 {
		t.Fatalf("DecryptValue = %+v", got)
	}
}

func TestEncryption_Methods(t *testing.T) {
	e, _ := NewEncryption("", nil)
	ctx := context.Background()

	encrypt, ok := e.Method("Encrypt")
	if !ok {
		t.Fatalf("Encrypt method missing")
	}
	decrypt, ok := e.Method("Decrypt")
	if !ok {
		t.Fatalf("Decrypt method missing")
	}

	sealed, err := encrypt(ctx, "hello")
	if err != nil {
		t.Fatalf("encrypt callback error: %v", err)
	}
	plain, err := decrypt(ctx, sealed)
	if err != nil {
		t.Fatalf("decrypt callback error: %v", err)
	}
	if plain != "hello" {
		t.Fatalf("decrypt callback = %v, want hello", plain)
	}

	if _, err := encrypt(ctx, 42); err == nil {
		t.Fatalf("expected error for non-string argument")
	}
	if _, ok := e.Method("Rotate"); ok {
		t.Fatalf("unexpected Rotate method")
	}
}
