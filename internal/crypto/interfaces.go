package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/encrypter_mock.go -package=mock

// Encrypter seals and opens values with one symmetric key.
//
// Sealed values are Base64 (standard encoding) strings of
// nonce || AES-256-GCM ciphertext, so they can travel in configuration
// files, query strings and cookies.
type Encrypter interface {
	// Encrypt seals plaintext.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt opens a value produced by Encrypt. It fails if the value was
	// sealed with another key or has been tampered with.
	Decrypt(sealed string) ([]byte, error)

	// EncryptValue serializes v to JSON and seals it.
	EncryptValue(v any) (string, error)

	// DecryptValue opens sealed and unmarshals the JSON into target, which
	// must be a non-nil pointer.
	DecryptValue(sealed string, target any) error
}
