package domain

import (
	"fmt"
	"strings"
)

// IconVariant selects how a source icon is rewritten.
type IconVariant int

const (
	// VariantInline renders a small icon meant to sit inside text.
	VariantInline IconVariant = iota
	// VariantCursor renders a filled, high-contrast icon for pointer images.
	VariantCursor
)

// Default pixel sizes per variant.
const (
	DefaultInlineSize = 16
	DefaultCursorSize = 32
)

// String returns the lower-case name of the variant.
func (v IconVariant) String() string {
	switch v {
	case VariantInline:
		return "inline"
	case VariantCursor:
		return "cursor"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// DefaultSize returns the size used when a request leaves it unset.
func (v IconVariant) DefaultSize() int {
	if v == VariantCursor {
		return DefaultCursorSize
	}
	return DefaultInlineSize
}

// ParseIconVariant converts a name such as "inline" or "cursor" into an IconVariant.
// An empty string yields VariantInline.
func ParseIconVariant(s string) (IconVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline":
		return VariantInline, nil
	case "cursor":
		return VariantCursor, nil
	default:
		return 0, fmt.Errorf("unknown icon variant %q", s)
	}
}
