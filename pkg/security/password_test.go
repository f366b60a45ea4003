package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcervantes/pantrylog-backend/pkg/config"
)

// Minimal argon parameters keep the tests fast.
func fastConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery", fastConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same password", fastConfig())
	require.NoError(t, err)
	second, err := HashPassword("same password", fastConfig())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := HashPassword("", fastConfig())
	require.Error(t, err)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$something$else",
		"$argon2id$v=19$m=8,t=1,p=1$not-base64!!$alsonot",
	} {
		_, err := VerifyPassword("password", encoded)
		require.Error(t, err)
	}
}

func TestParamsAreClamped(t *testing.T) {
	params := paramsFromConfig(config.PasswordConfig{})
	assert.GreaterOrEqual(t, params.Memory, uint32(8))
	assert.GreaterOrEqual(t, params.Time, uint32(1))
	assert.GreaterOrEqual(t, params.Parallelism, uint8(1))
	assert.GreaterOrEqual(t, params.SaltLen, uint32(8))
	assert.GreaterOrEqual(t, params.KeyLen, uint32(16))
}
