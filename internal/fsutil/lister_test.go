package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSLister_ListsEntriesWithTypes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte("service {}"), 0o600))

	entries, err := OSLister{}.List(dir)
	require.NoError(t, err)
	require.Equal(t, []Entry{{Name: "a.hcl", IsDir: false}, {Name: "sub", IsDir: true}}, entries)
}

func TestOSLister_TypedErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := OSLister{}.List(filepath.Join(dir, "missing"))
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = OSLister{}.List(file)
	require.True(t, errors.Is(err, ErrNotDir))
}
