package codec

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64_Decode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		encoded  bool
	}{
		{"std padded", base64.StdEncoding.EncodeToString([]byte("settings")), "settings", true},
		{"std raw", base64.RawStdEncoding.EncodeToString([]byte("page=2&x=1")), "page=2&x=1", true},
		{"url safe", base64.RawURLEncoding.EncodeToString([]byte("a>b?c~~~")), "a>b?c~~~", true},
		{"plain word", "hello", "", false},
		{"spaces", "not base64 at all", "", false},
		{"binary payload", base64.StdEncoding.EncodeToString([]byte{0xff, 0x00, 0x01, 0x02}), "", false},
		{"only padding", "====", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBase64().Decode(tt.input)
			if !tt.encoded {
				assert.ErrorIs(t, err, ErrNotEncoded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

type stubDecoder struct {
	out string
	err error
}

func (s stubDecoder) Decode(string) (string, error) { return s.out, s.err }

func TestChain_Decode(t *testing.T) {
	boom := errors.New("boom")

	t.Run("first recognising decoder wins", func(t *testing.T) {
		c := Chain{stubDecoder{err: ErrNotEncoded}, stubDecoder{out: "second"}, stubDecoder{out: "third"}}
		got, err := c.Decode("x")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("corrupt value error is returned", func(t *testing.T) {
		c := Chain{stubDecoder{err: boom}, stubDecoder{out: "never"}}
		_, err := c.Decode("x")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nobody recognises", func(t *testing.T) {
		_, err := Chain{stubDecoder{err: ErrNotEncoded}}.Decode("x")
		assert.ErrorIs(t, err, ErrNotEncoded)
	})
}
