// Package imagestore keeps uploaded product images on local disk and backs them up.
package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
)

// ErrUnsupportedFormat is returned for files that are not a usable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// rawTypes are stored without decoding; their content must sniff as the type
// their extension claims.
var rawTypes = map[string]string{
	".gif":  "image/gif",
	".webp": "image/webp",
}

// LocalStore writes images under Dir and serves them from URLPrefix.
// JPEG and PNG uploads wider than MaxWidth are scaled down and re-encoded as JPEG.
type LocalStore struct {
	Dir       string
	URLPrefix string
	MaxWidth  uint
}

func NewLocalStore(dir, urlPrefix string, maxWidth uint) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/"), MaxWidth: maxWidth}, nil
}

// Save stores content under a fresh name and returns its public URL.
func (s *LocalStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var name string
	var err error
	switch ext {
	case ".jpg", ".jpeg", ".png":
		name, err = s.saveResized(ext, content)
	case ".gif", ".webp":
		if content, err = sniff(content, rawTypes[ext]); err != nil {
			return "", err
		}
		name = uuid.NewString() + ext
		err = s.write(name, func(w io.Writer) error {
			_, err := io.Copy(w, content)
			return err
		})
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	logging.Ctx(ctx).Debug().Str("file", name).Str("upload", filename).Msg("image stored")
	return s.URLPrefix + "/" + name, nil
}

// sniff checks the leading bytes of content against want and returns a reader
// that still yields the whole content.
func sniff(content io.Reader, want string) (io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if got := http.DetectContentType(head); got != want {
		return nil, fmt.Errorf("%w: content is %s, not %s", ErrUnsupportedFormat, got, want)
	}
	return io.MultiReader(bytes.NewReader(head), content), nil
}

func (s *LocalStore) saveResized(ext string, content io.Reader) (string, error) {
	var img image.Image
	var err error
	if ext == ".png" {
		img, err = png.Decode(content)
	} else {
		img, err = jpeg.Decode(content)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if s.MaxWidth > 0 && uint(img.Bounds().Dx()) > s.MaxWidth {
		img = resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
	}

	name := uuid.NewString() + ".jpg"
	err = s.write(name, func(w io.Writer) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 80})
	})
	return name, err
}

func (s *LocalStore) write(name string, fill func(io.Writer) error) error {
	path := filepath.Join(s.Dir, name)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if err := fill(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
