package password_test

import (
	"galpao/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	hash, err := password.Hash("bolinha")
	require.NoError(t, err)

	assert.NotEqual(t, "bolinha", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	_, err = password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength+1))
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, password.Check(strings.Repeat("a", password.MaxLength)))
	assert.NoError(t, password.Check(strings.Repeat("é", 36)))
	assert.ErrorIs(t, password.Check(strings.Repeat("é", 40)), password.ErrTooLong)
	assert.ErrorIs(t, password.Check(""), password.ErrEmptyPassword)
}

func TestMatches(t *testing.T) {
	hash, err := password.Hash("bolinha")
	require.NoError(t, err)

	ok, err := password.Matches("bolinha", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = password.Matches("bola", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = password.Matches(strings.Repeat("é", 40), hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = password.Matches("bolinha", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("anasouza")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{"matching password", "anasouza", hash, nil},
		{"wrong password", "anasouz", hash, password.ErrInvalidPassword},
		{"empty password", "", hash, password.ErrInvalidPassword},
		{"empty hash", "anasouza", "", password.ErrInvalidPassword},
		{"over the byte limit", strings.Repeat("é", 40), hash, password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		err := password.Verify("anasouza", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}
