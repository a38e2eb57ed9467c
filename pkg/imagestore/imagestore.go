// Package imagestore ingests uploaded profile pictures: it validates the
// format, renames the file to a random opaque name and bounds the image to a
// fixed thumbnail box before writing it to the pictures directory.
package imagestore

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for uploads that are not jpg or png.
var ErrUnsupportedFormat = errors.New("only jpg and png images are allowed")

// Pictures are downscaled to fit this box, preserving aspect ratio. Smaller
// images are stored as-is.
const thumbnailBox = 125

// Random filenames are this many hex characters before the extension.
const nameBytes = 8

// Store writes profile pictures into a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pictures directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory pictures are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// SavePicture validates, thumbnails and stores an uploaded image. It returns
// the generated filename; the user-supplied name is never trusted beyond its
// extension.
func (s *Store) SavePicture(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".png" {
		return "", fmt.Errorf("%q: %w", file.Filename, ErrUnsupportedFormat)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Fit only ever scales down, so small pictures pass through untouched.
	thumb := imaging.Fit(img, thumbnailBox, thumbnailBox, imaging.Lanczos)

	name, err := randomName(ext)
	if err != nil {
		return "", err
	}
	if err := imaging.Save(thumb, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save picture: %w", err)
	}
	return name, nil
}

// randomName builds "<16 hex chars><ext>".
func randomName(ext string) (string, error) {
	buf := make([]byte, nameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}
