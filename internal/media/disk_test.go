package media

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-stock-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["image"][0]
}

func TestPutAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/storage")

	path, err := store.Put(fileHeader(t, "photo.PNG", []byte("png-bytes")), "images")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "images/"))
	assert.True(t, strings.HasSuffix(path, ".png"), "extension should be lowercased: %s", path)

	onDisk, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), onDisk)

	assert.Equal(t, "/storage/"+path, store.URL(path))

	assert.True(t, store.Delete(path))
	assert.False(t, store.Delete(path), "second delete reports failure")
}

func TestPutRejectsUnsupportedType(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/storage")

	_, err := store.Put(fileHeader(t, "script.exe", []byte("mz")), "images")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestFolderTraversalRejected(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/storage")

	_, err := store.Put(fileHeader(t, "photo.png", []byte("x")), "../outside")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = store.List("../../etc")
	require.Error(t, err)

	assert.False(t, store.Delete("../somefile.png"))
}

func TestList(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/storage")

	// Unknown folders list as empty, not as an error.
	paths, err := store.List("images")
	require.NoError(t, err)
	assert.Empty(t, paths)

	first, err := store.Put(fileHeader(t, "a.jpg", []byte("a")), "images")
	require.NoError(t, err)
	second, err := store.Put(fileHeader(t, "b.jpg", []byte("b")), "images")
	require.NoError(t, err)

	paths, err = store.List("images")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, paths)
}
