package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("photo"), "attendance/2024-03-12/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "attendance/2024-03-12/a.jpg", key)

	data, err := os.ReadFile(filepath.Join(dir, "attendance", "2024-03-12", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "photo", string(data))

	assert.Equal(t, "http://localhost:8080/uploads/attendance/2024-03-12/a.jpg", s.URL(key))

	require.NoError(t, s.Delete(context.Background(), key))
	require.NoError(t, s.Delete(context.Background(), key), "deleting twice is not an error")
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("x"), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", key)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
