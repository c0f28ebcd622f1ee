package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authService "github.com/allisson/tracker/internal/auth/service"
)

func TestRunGenerateKeys(t *testing.T) {
	t.Run("generates-usable-key-pair", func(t *testing.T) {
		dir := t.TempDir()
		privatePath := filepath.Join(dir, "private.pem")
		publicPath := filepath.Join(dir, "public.pem")

		var out bytes.Buffer
		err := RunGenerateKeys(&out, privatePath, publicPath, 2048)
		require.NoError(t, err)
		require.Contains(t, out.String(), "JWT_PRIVATE_KEY_PATH")

		info, err := os.Stat(privatePath)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		// The generated pair must round-trip through the token codec.
		_, err = authService.NewTokenCodecFromFiles(privatePath, publicPath, 15*time.Minute, 168*time.Hour)
		require.NoError(t, err)
	})

	t.Run("rejects-weak-key-size", func(t *testing.T) {
		dir := t.TempDir()

		var out bytes.Buffer
		err := RunGenerateKeys(&out, filepath.Join(dir, "p.pem"), filepath.Join(dir, "pub.pem"), 1024)
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 2048 bits")
	})
}
