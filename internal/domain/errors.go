package domain

import "errors"

// Sentinel errors for the build. These provide consistent, checkable
// errors for the failures a build step can decide to tolerate or not.
var (
	ErrIconNotFound      = errors.New("icon asset not found")
	ErrInvalidIconName   = errors.New("invalid icon name")
	ErrInvalidSize       = errors.New("invalid icon size")
	ErrMalformedSVG      = errors.New("malformed svg markup")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
