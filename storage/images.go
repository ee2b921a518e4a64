// Package storage writes uploaded post images under the public directory so
// the HTTP layer can serve them statically.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize is the 5 MiB ceiling for a post-creation request body.
const MaxUploadSize = 5 << 20

const imagesSubdir = "images"

// Only JPEG and PNG attachments are stored; anything else is dropped
// without an error and the post keeps an empty imageFile.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ImageStore persists one image per post under <publicDir>/images.
type ImageStore struct {
	publicDir string
	now       func() time.Time
}

func NewImageStore(publicDir string) *ImageStore {
	return &ImageStore{publicDir: publicDir, now: time.Now}
}

// Save stores the uploaded file and returns its public path, for example
// "/images/1712345678901-photo.png". A nil header or a disallowed MIME type
// yields an empty path and no error. The stored name is the upload's epoch
// millis plus the sanitized original name; collisions within the same
// millisecond on the same name are possible but accepted.
func (s *ImageStore) Save(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", nil
	}
	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		return "", nil
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.publicDir, imagesSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeName(header.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/" + path.Join(imagesSubdir, name), nil
}

// sanitizeName strips any directory components a client smuggled into the
// original filename and flattens whitespace.
func sanitizeName(original string) string {
	base := filepath.Base(filepath.Clean(original))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	return base
}
