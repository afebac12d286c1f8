// Package storage keeps uploaded product images on local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotAnImage = errors.New("file is not an image")

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ImageStore persists an image for a product and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, productID string, r io.Reader) (string, error)
}

type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore stores files under dir and builds URLs as baseURL/images/<productID>/<file>.
func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalImageStore) Dir() string {
	return s.dir
}

// SniffMIME reads the head of r to detect its content type and returns a reader
// that still yields the full content.
func SniffMIME(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read: %w", err)
	}
	head = head[:n]
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}

func (s *LocalImageStore) Save(_ context.Context, productID string, r io.Reader) (string, error) {
	mime, body, err := SniffMIME(r)
	if err != nil {
		return "", err
	}
	ext, ok := extensions[mime]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mime)
	}
	if strings.ContainsAny(productID, `/\.`) || productID == "" {
		return "", fmt.Errorf("invalid product id %q", productID)
	}

	productDir := filepath.Join(s.dir, productID)
	if err := os.MkdirAll(productDir, 0o755); err != nil {
		return "", fmt.Errorf("creating image dir: %w", err)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(productDir, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("writing image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing image: %w", err)
	}

	return s.baseURL + path.Join("/images", productID, name), nil
}
