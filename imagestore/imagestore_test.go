package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveResizesWideImages(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads/", 100)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "Photo.PNG", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	require.True(t, strings.HasSuffix(url, ".jpg"))

	f, err := os.Open(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestSaveKeepsSmallImages(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads", 800)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "small.png", bytes.NewReader(pngBytes(t, 40, 30)))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
}

func TestSaveRawFormats(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads", 800)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "anim.gif", strings.NewReader("GIF89a"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".gif"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))

	webp := "RIFF\x24\x00\x00\x00WEBPVP8 " + strings.Repeat("\x00", 600)
	url, err = s.Save(context.Background(), "photo.webp", strings.NewReader(webp))
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, webp, string(data), "content past the sniffed header is kept")
}

func TestSaveRawFormatsCheckContent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads", 800)
	require.NoError(t, err)

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"text named gif", "fake.gif", "<script>alert(1)</script>"},
		{"gif named webp", "anim.webp", "GIF89a"},
		{"empty gif", "empty.gif", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Save(context.Background(), tt.filename, strings.NewReader(tt.content))
			require.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveRejectsUnsupported(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads", 800)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "notes.txt", strings.NewReader("hi"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = s.Save(context.Background(), "broken.jpg", strings.NewReader("not a jpeg"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackupNextRun(t *testing.T) {
	b := NewBackup("src", "dst", time.Hour)
	b.Hour, b.Minute = 3, 30

	before := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 3, 30, 0, 0, time.UTC), b.NextRun(before))

	after := time.Date(2024, 5, 1, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 30, 0, 0, time.UTC), b.NextRun(after))
}

func TestBackupRunOnce(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "b.jpg"), []byte("b"), 0o644))

	stale := filepath.Join(dst, "2000-01-01_00-00-00")
	require.NoError(t, os.MkdirAll(stale, 0o755))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	b := NewBackup(src, dst, 24*time.Hour)
	dest, err := b.RunOnce()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "nested", "b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(dest)
	assert.NoError(t, err)
}

func TestBackupRunStopsOnCancel(t *testing.T) {
	b := NewBackup(t.TempDir(), t.TempDir(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
