package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	MinPhotoSide  = 600
	MaxPhotoBytes = 2 << 20
)

var (
	ErrAspectRatio = &ConstraintError{Code: "aspect_ratio", Message: "Image must have a 1:1 aspect ratio (square)."}
	ErrTooSmall    = &ConstraintError{Code: "too_small", Message: fmt.Sprintf("Image must be at least %d×%d pixels.", MinPhotoSide, MinPhotoSide)}
	ErrTooLarge    = &ConstraintError{Code: "too_large", Message: "Image file size must not exceed 2 MB."}
	ErrUndecodable = &ConstraintError{Code: "undecodable", Message: "Upload a valid JPEG, PNG or GIF image."}
)

// ConstraintError is a user-facing rejection of an uploaded image.
type ConstraintError struct {
	Code    string
	Message string
}

func (e *ConstraintError) Error() string { return "media: " + e.Message }

// Is matches on Code so wrapped copies compare equal to the sentinels.
func (e *ConstraintError) Is(target error) bool {
	var t *ConstraintError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Info describes a decoded image header.
type Info struct {
	Format string
	Width  int
	Height int
	Size   int
}

// ValidateSquarePhoto checks that data is a square image of at least MinPhotoSide pixels per
// side and at most MaxPhotoBytes. All checks are evaluated; the first failure is returned in
// the order aspect ratio, minimum size, file size.
func ValidateSquarePhoto(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{Size: len(data)}, ErrUndecodable
	}
	info := Info{Format: format, Width: cfg.Width, Height: cfg.Height, Size: len(data)}

	checks := []struct {
		failed bool
		err    error
	}{
		{cfg.Width != cfg.Height, ErrAspectRatio},
		{cfg.Width < MinPhotoSide || cfg.Height < MinPhotoSide, ErrTooSmall},
		{len(data) > MaxPhotoBytes, ErrTooLarge},
	}
	for _, c := range checks {
		if c.failed {
			return info, c.err
		}
	}
	return info, nil
}

// Extension maps a decoded format to a file extension.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ""
	}
}
