package storage

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fileHeader builds a parsed multipart.FileHeader the way net/http would
// hand it to a handler.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["image"]
	if len(headers) != 1 {
		t.Fatalf("got %d file headers, want 1", len(headers))
	}
	return headers[0]
}

func TestSaveStoresAllowedImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	content := []byte("png bytes")
	got, err := store.Save(fileHeader(t, "my photo.png", "image/png", content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := "/images/1700000000000-my-photo.png"
	if got != want {
		t.Errorf("Save = %q, want %q", got, want)
	}

	stored, err := os.ReadFile(filepath.Join(dir, "images", "1700000000000-my-photo.png"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored bytes differ from upload")
	}
}

func TestSaveSilentlyDropsDisallowedType(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	got, err := store.Save(fileHeader(t, "anim.gif", "image/gif", []byte("gif bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got != "" {
		t.Errorf("Save = %q, want empty path for image/gif", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "images")); !os.IsNotExist(err) {
		t.Error("images dir was created for a dropped upload")
	}
}

func TestSaveNilHeader(t *testing.T) {
	got, err := NewImageStore(t.TempDir()).Save(nil)
	if err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	if got != "" {
		t.Errorf("Save(nil) = %q, want empty", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my-photo.png"},
		{"../../etc/passwd", "passwd"},
		{"/abs/path.jpg", "path.jpg"},
		{"", "upload"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if strings.ContainsAny(sanitizeName("a/b\\c.png"), "/") {
		t.Error("sanitized name still contains a path separator")
	}
}
