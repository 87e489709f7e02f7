package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

func TestParseBasicCredentials(t *testing.T) {
	t.Run("valid header", func(t *testing.T) {
		creds, ok, err := ParseBasicCredentials(basicHeader("priest01", "secret"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "priest01", creds.Login)
		assert.Equal(t, "secret", creds.Password)
	})

	t.Run("password containing colons", func(t *testing.T) {
		creds, ok, err := ParseBasicCredentials(basicHeader("priest01", "se:cr:et"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "se:cr:et", creds.Password)
	})

	t.Run("lowercase scheme accepted", func(t *testing.T) {
		header := "basic " + base64.StdEncoding.EncodeToString([]byte("a:b"))
		_, ok, err := ParseBasicCredentials(header)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing header is anonymous, not an error", func(t *testing.T) {
		_, ok, err := ParseBasicCredentials("")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-basic scheme is anonymous, not an error", func(t *testing.T) {
		_, ok, err := ParseBasicCredentials("Bearer abc.def.ghi")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("undecodable payload is malformed", func(t *testing.T) {
		_, ok, err := ParseBasicCredentials("Basic %%%not-base64%%%")
		assert.ErrorIs(t, err, ErrMalformedCredentials)
		assert.False(t, ok)
	})

	t.Run("payload without colon is malformed", func(t *testing.T) {
		header := "Basic " + base64.StdEncoding.EncodeToString([]byte("no-separator"))
		_, ok, err := ParseBasicCredentials(header)
		assert.ErrorIs(t, err, ErrMalformedCredentials)
		assert.False(t, ok)
	})
}
