package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"deskpilot/pkg/actions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryWithFiles(t *testing.T) *actions.Registry {
	t.Helper()
	reg := actions.NewRegistry()
	reg.Register(Handlers()...)
	return reg
}

func TestCreateFile(t *testing.T) {
	reg := registryWithFiles(t)
	target := filepath.Join(t.TempDir(), "note.txt")

	h, _ := reg.Lookup("create_file")
	res, err := h.Execute(context.Background(), map[string]any{
		"filename": target,
		"content":  "hello",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Created file: "+target, res.Message)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCreateFile_MissingFilename(t *testing.T) {
	reg := registryWithFiles(t)

	h, _ := reg.Lookup("create_file")
	res, err := h.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestSearchFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "d.go"), []byte("x"), 0644))

	reg := registryWithFiles(t)
	h, _ := reg.Lookup("search_files")
	res, err := h.Execute(context.Background(), map[string]any{
		"pattern":   "*.go",
		"directory": dir,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Found 3 files matching '*.go'", res.Message)
}

func TestFindLargeFiles(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, 2*1024*1024)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.bin"), big, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.bin"), []byte("x"), 0644))

	reg := registryWithFiles(t)
	h, _ := reg.Lookup("find_large_files")
	res, err := h.Execute(context.Background(), map[string]any{
		"directory":   dir,
		"min_size_mb": 1.0,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Found 1 large files", res.Message)
}

func TestDirectorySize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), make([]byte, 200), 0644))

	reg := registryWithFiles(t)
	h, _ := reg.Lookup("directory_size")
	res, err := h.Execute(context.Background(), map[string]any{"directory": dir})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Data["file_count"])
	assert.Equal(t, int64(300), res.Data["total_size_bytes"])
}

func TestDirectorySize_MissingDirectory(t *testing.T) {
	reg := registryWithFiles(t)
	h, _ := reg.Lookup("directory_size")
	res, err := h.Execute(context.Background(), map[string]any{
		"directory": filepath.Join(t.TempDir(), "nope"),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
}
