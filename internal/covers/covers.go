// Package covers validates uploaded book cover images.
//
// Covers are stored byte-for-byte in the books table. This package only
// decides whether an upload is acceptable and what content type to serve it
// with; it never decodes or re-encodes the image.
package covers

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedType = errors.New("unsupported cover image type")
	ErrTooLarge        = errors.New("cover image too large")
	ErrEmpty           = errors.New("cover image is empty")
)

// AllowedTypes are the MIME types accepted for upload.
var AllowedTypes = []string{"image/jpeg", "image/png"}

// Validator checks cover uploads against a size limit and AllowedTypes.
type Validator struct {
	maxBytes int64
}

// NewValidator creates a validator. maxBytes <= 0 disables the size check.
func NewValidator(maxBytes int64) *Validator {
	return &Validator{maxBytes: maxBytes}
}

// NewValidatorMB is NewValidator with the limit expressed in megabytes.
func NewValidatorMB(maxMB int) *Validator {
	return NewValidator(int64(maxMB) << 20)
}

// MaxBytes returns the configured size limit.
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// Read consumes r and returns the image bytes with their detected MIME type.
func (v *Validator) Read(r io.Reader) ([]byte, string, error) {
	src := r
	if v.maxBytes > 0 {
		src = io.LimitReader(r, v.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("read cover: %w", err)
	}
	mime, err := v.Validate(data)
	if err != nil {
		return nil, "", err
	}
	return data, mime, nil
}

// ReadFile loads and validates a cover from disk.
func (v *Validator) ReadFile(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open cover: %w", err)
	}
	defer f.Close()
	return v.Read(f)
}

// Validate checks data and returns its MIME type.
func (v *Validator) Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if v.maxBytes > 0 && int64(len(data)) > v.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, v.maxBytes)
	}
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), AllowedTypes...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	return mtype.String(), nil
}

// ContentType sniffs stored cover bytes for serving. Unknown data falls back
// to application/octet-stream.
func ContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
