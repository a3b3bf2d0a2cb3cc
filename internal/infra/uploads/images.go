package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	URLPrefix = "/static/uploads/"
	MaxBytes  = 5 << 20
)

var (
	ErrNotImage = errors.New("upload is not a supported image")
	ErrTooLarge = errors.New("image is larger than 5MB")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsInline reports whether ref carries the image bytes itself rather than
// pointing at a stored file or an external URL.
func IsInline(ref string) bool {
	return strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "base64,")
}

// Images writes inline artwork images to Dir.
type Images struct {
	Dir string
}

// Save stores an inline image and returns its public path. References that
// are not inline come back unchanged.
func (s Images) Save(ref string) (string, error) {
	if !IsInline(ref) {
		return ref, nil
	}

	header, payload, found := strings.Cut(ref, ",")
	if !found || (!strings.HasSuffix(header, ";base64") && header != "base64") {
		return "", ErrNotImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxBytes+2 {
		return "", ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}

	// the declared media type is not trusted, the bytes decide
	ext, ok := extensions[http.DetectContentType(data)]
	if !ok {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	name := "artwork_" + uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return URLPrefix + name, nil
}
