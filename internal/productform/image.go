package productform

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotAnImage = errors.New("file is not an image")

// File is an image picked by the user but not uploaded yet.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// OpenFile reads path and declares its content type from the extension.
func OpenFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Data:        data,
	}, nil
}

// MIMEType returns the declared media type, or the sniffed one when none was declared.
func (f File) MIMEType() string {
	if f.ContentType != "" {
		if mt, _, err := mime.ParseMediaType(f.ContentType); err == nil {
			return mt
		}
		return f.ContentType
	}
	mt, _, _ := strings.Cut(http.DetectContentType(f.Data), ";")
	return mt
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.MIMEType(), "image/")
}

// DataURL renders the file as a data: URL suitable for a local preview.
func (f File) DataURL() string {
	return "data:" + f.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// ImageStage holds the pending image and its preview. The preview is either a
// data URL of the pending file or the persisted remote image.
type ImageStage struct {
	pending  *File
	preview  string
	dragging bool
}

func (s *ImageStage) Select(file File) {
	s.pending = &file
	s.preview = file.DataURL()
}

// Drop accepts a dragged file. Non-images are rejected and leave the stage untouched.
func (s *ImageStage) Drop(file File) error {
	s.dragging = false
	if !file.IsImage() {
		return fmt.Errorf("%w: %s", ErrNotAnImage, file.MIMEType())
	}
	s.Select(file)
	return nil
}

// Remove clears the pending file and preview. A persisted remote image is kept until the next save.
func (s *ImageStage) Remove() {
	s.pending = nil
	s.preview = ""
}

func (s *ImageStage) DragEnter() { s.dragging = true }

func (s *ImageStage) DragLeave() { s.dragging = false }

func (s *ImageStage) Dragging() bool { return s.dragging }

func (s *ImageStage) Preview() string { return s.preview }

func (s *ImageStage) Pending() (File, bool) {
	if s.pending == nil {
		return File{}, false
	}
	return *s.pending, true
}

func (s *ImageStage) showPersisted(url *string) {
	s.pending = nil
	s.preview = ""
	if url != nil {
		s.preview = *url
	}
}
