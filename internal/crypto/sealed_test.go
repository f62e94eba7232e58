package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-app-kernel/internal/codec"
	"github.com/MKhiriev/go-app-kernel/internal/mock"
)

func TestSealedDecoder_Decode(t *testing.T) {
	ctrl := gomock.NewController(t)
	enc := mock.NewMockEncrypter(ctrl)

	enc.EXPECT().Decrypt("abc").Return([]byte("reports"), nil)
	enc.EXPECT().Decrypt("bad").Return(nil, errors.New("decryption failed"))

	d := NewSealedDecoder(enc)

	got, err := d.Decode("enc:abc")
	require.NoError(t, err)
	assert.Equal(t, "reports", got)

	_, err = d.Decode("enc:bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, codec.ErrNotEncoded)

	_, err = d.Decode("plain")
	assert.ErrorIs(t, err, codec.ErrNotEncoded)
}

func TestSeal_RoundTripThroughChain(t *testing.T) {
	e, err := NewEncryption("passphrase", []byte("demo-salt-demo-salt"))
	require.NoError(t, err)

	sealed, err := Seal(e, "index")
	require.NoError(t, err)

	chain := codec.Chain{NewSealedDecoder(e), codec.NewBase64()}
	got, err := chain.Decode(sealed)
	require.NoError(t, err)
	assert.Equal(t, "index", got)
}
