package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "var", "lib", "global-os", "accounts.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(target), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	_, err = os.Stat(target)
	require.True(t, errors.Is(err, os.ErrNotExist), "only the directory is created")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "data", "accounts.db")

	first, err := EnsureParentDir(target)
	require.NoError(t, err)
	second, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsIfFileBlocksPath(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data"), []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(tmp, "data", "accounts.db"))
	require.Error(t, err)
}

func TestWriteSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "api-secret.key")

	require.NoError(t, WriteSecretFile(path, []byte("0123456789abcdef0123456789abcdef")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 32)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestWriteSecretFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api-secret.key")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	err := WriteSecretFile(path, []byte("new"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrExist))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old", string(data))
}
