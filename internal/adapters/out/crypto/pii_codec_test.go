package crypto_test

import (
	"bytes"
	"testing"

	"communitydelivery/internal/adapters/out/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestNewChaChaPIICodec_RejectsWrongKeySize(t *testing.T) {
	_, err := crypto.NewChaChaPIICodec([]byte("too short"))
	require.Error(t, err)
}

func TestChaChaPIICodec_RoundTrip(t *testing.T) {
	codec, err := crypto.NewChaChaPIICodec(testKey())
	require.NoError(t, err)

	ciphertext, err := codec.Encrypt("742 Evergreen Terrace, Apt 3")
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "Evergreen")

	plaintext, err := codec.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "742 Evergreen Terrace, Apt 3", plaintext)
}

func TestChaChaPIICodec_IdenticalPlaintextsDiffer(t *testing.T) {
	codec, err := crypto.NewChaChaPIICodec(testKey())
	require.NoError(t, err)

	first, err := codec.Encrypt("555-0142")
	require.NoError(t, err)
	second, err := codec.Encrypt("555-0142")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestChaChaPIICodec_Decrypt_TamperedCiphertext(t *testing.T) {
	codec, err := crypto.NewChaChaPIICodec(testKey())
	require.NoError(t, err)

	ciphertext, err := codec.Encrypt("ring twice, leave at door")
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0xFF

	_, err = codec.Decrypt(ciphertext)
	require.ErrorIs(t, err, crypto.ErrCiphertextInvalid)
}

func TestChaChaPIICodec_Decrypt_TruncatedCiphertext(t *testing.T) {
	codec, err := crypto.NewChaChaPIICodec(testKey())
	require.NoError(t, err)

	_, err = codec.Decrypt([]byte{0x01, 0x02})
	require.ErrorIs(t, err, crypto.ErrCiphertextInvalid)
}

func TestChaChaPIICodec_Decrypt_WrongKey(t *testing.T) {
	codec, err := crypto.NewChaChaPIICodec(testKey())
	require.NoError(t, err)

	other, err := crypto.NewChaChaPIICodec(bytes.Repeat([]byte{0x07}, 32))
	require.NoError(t, err)

	ciphertext, err := codec.Encrypt("742 Evergreen Terrace")
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext)
	require.ErrorIs(t, err, crypto.ErrCiphertextInvalid)
}
