package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	files map[string][]byte
}

func (m *memStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.files[path] = data
	return path, nil
}

func (m *memStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memStorage) URL(path string) string {
	return "http://files/" + path
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAttendancePhoto(t *testing.T) {
	store := &memStorage{files: map[string][]byte{}}
	svc := &fileServiceImpl{storage: store, now: func() time.Time { return time.Unix(1710212400, 0) }}
	date := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	url, err := svc.UploadAttendancePhoto(context.Background(), "emp-1", date, bytes.NewReader(testPNG(t)), "selfie.PNG", "check_in")
	require.NoError(t, err)
	assert.Equal(t, "http://files/attendance/2024-03-12/emp-1-check_in-1710212400.jpg", url)

	stored := store.files["attendance/2024-03-12/emp-1-check_in-1710212400.jpg"]
	require.NotEmpty(t, stored)
	_, err = jpeg.Decode(bytes.NewReader(stored))
	assert.NoError(t, err, "photos are stored as JPEG")
}

func TestUploadAttendancePhoto_RejectsOtherTypes(t *testing.T) {
	svc := NewFileService(&memStorage{files: map[string][]byte{}})

	_, err := svc.UploadAttendancePhoto(context.Background(), "emp-1", time.Now(), strings.NewReader("%PDF"), "doc.pdf", "check_in")
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = svc.UploadAttendancePhoto(context.Background(), "emp-1", time.Now(), strings.NewReader("not an image"), "a.jpg", "check_in")
	assert.Error(t, err)
}
