package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	box, err := NewBox(key)
	require.NoError(t, err)

	t.Run("round trips plaintext", func(t *testing.T) {
		tok, err := box.Encrypt("1234567890")
		require.NoError(t, err)
		assert.NotContains(t, tok, "1234567890")

		plain, err := box.Decrypt(tok)
		require.NoError(t, err)
		assert.Equal(t, "1234567890", plain)
	})

	t.Run("rejects token from another key", func(t *testing.T) {
		otherKey, err := GenerateKey()
		require.NoError(t, err)
		other, err := NewBox(otherKey)
		require.NoError(t, err)

		tok, err := other.Encrypt("secret")
		require.NoError(t, err)

		_, err = box.Decrypt(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("decrypts with rotated keys", func(t *testing.T) {
		newKey, err := GenerateKey()
		require.NoError(t, err)
		rotated, err := NewBox(newKey + "," + key)
		require.NoError(t, err)

		oldTok, err := box.Encrypt("legacy")
		require.NoError(t, err)

		plain, err := rotated.Decrypt(oldTok)
		require.NoError(t, err)
		assert.Equal(t, "legacy", plain)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := NewBox("not-a-key")
		assert.Error(t, err)
	})
}

func TestMask(t *testing.T) {
	assert.Equal(t, "******7890", Mask("1234567890"))
	assert.Equal(t, "789", Mask("789"))
	assert.Equal(t, "", Mask(""))
}
