package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	svc, err := NewPasswordService()
	require.NoError(t, err)

	t.Run("hash and verify roundtrip", func(t *testing.T) {
		digest, err := svc.Hash("SecurePass123!")
		require.NoError(t, err)
		require.NotEmpty(t, digest)
		assert.NotEqual(t, "SecurePass123!", digest)

		assert.True(t, svc.Verify("SecurePass123!", digest))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		digest, err := svc.Hash("SecurePass123!")
		require.NoError(t, err)

		assert.False(t, svc.Verify("WrongPass123!", digest))
	})

	t.Run("distinct salts produce distinct digests", func(t *testing.T) {
		first, err := svc.Hash("SecurePass123!")
		require.NoError(t, err)
		second, err := svc.Hash("SecurePass123!")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("malformed digest is a verification failure, not a panic", func(t *testing.T) {
		assert.False(t, svc.Verify("SecurePass123!", "not-a-digest"))
		assert.False(t, svc.Verify("SecurePass123!", ""))
	})
}
