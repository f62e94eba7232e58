package crypto

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/codec"
)

// SealedPrefix marks request parameters sealed with an [Encrypter].
const SealedPrefix = "enc:"

// SealedDecoder is a codec.Decoder for parameters of the form
// "enc:<sealed>". Other values are reported as codec.ErrNotEncoded.
type SealedDecoder struct {
	enc Encrypter
}

// NewSealedDecoder creates a SealedDecoder opening values with enc.
func NewSealedDecoder(enc Encrypter) *SealedDecoder {
	return &SealedDecoder{enc: enc}
}

// Decode implements codec.Decoder.
func (d *SealedDecoder) Decode(value string) (string, error) {
	sealed, ok := strings.CutPrefix(value, SealedPrefix)
	if !ok {
		return "", codec.ErrNotEncoded
	}
	plaintext, err := d.enc.Decrypt(sealed)
	if err != nil {
		return "", fmt.Errorf("open sealed parameter: %w", err)
	}
	return string(plaintext), nil
}

// Seal produces the parameter form SealedDecoder accepts.
func Seal(enc Encrypter, value string) (string, error) {
	sealed, err := enc.Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return SealedPrefix + sealed, nil
}
