// Package codec decodes request parameter values that arrive encoded.
//
// The merger hands every browser parameter longer than four characters to a
// [Decoder]; values the decoder does not recognise are kept as they are.
package codec

//go:generate mockgen -source=codec.go -destination=../mock/codec_mock.go -package=mock

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decoder turns an encoded parameter value back into plain text.
type Decoder interface {
	// Decode returns the decoded value, [ErrNotEncoded] when value does not
	// look encoded, or another error when it looks encoded but is corrupt.
	Decode(value string) (string, error)
}

// ErrNotEncoded is returned by decoders for values they leave untouched.
var ErrNotEncoded = errors.New("value is not encoded")

// Base64 recognises standard and URL-safe base64, padded or not, whose
// payload is printable UTF-8 text.
type Base64 struct{}

// NewBase64 returns the default parameter decoder.
func NewBase64() Base64 {
	return Base64{}
}

// Decode implements [Decoder].
func (Base64) Decode(value string) (string, error) {
	trimmed := strings.TrimRight(value, "=")
	if trimmed == "" || len(value)-len(trimmed) > 2 {
		return "", ErrNotEncoded
	}

	enc := base64.RawStdEncoding
	if strings.ContainsAny(trimmed, "-_") {
		enc = base64.RawURLEncoding
	}

	raw, err := enc.DecodeString(trimmed)
	if err != nil || !isPrintable(raw) {
		return "", ErrNotEncoded
	}

	return string(raw), nil
}

// Chain tries each decoder in order and returns the first result that is
// not [ErrNotEncoded].
type Chain []Decoder

// Decode implements [Decoder].
func (c Chain) Decode(value string) (string, error) {
	for _, d := range c {
		decoded, err := d.Decode(value)
		if errors.Is(err, ErrNotEncoded) {
			continue
		}
		return decoded, err
	}
	return "", ErrNotEncoded
}

func isPrintable(raw []byte) bool {
	if len(raw) == 0 || !utf8.Valid(raw) {
		return false
	}
	for _, r := range string(raw) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
