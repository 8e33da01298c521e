// Package icons loads SVG icon assets from an icon package directory and
// rewrites them into the variants used by the site: small inline icons and
// filled cursor images.
package icons

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/otherdev/site/internal/domain"
	"github.com/spf13/afero"
)

// DefaultDir is where the Tabler outline icons live after an npm install.
const DefaultDir = "node_modules/@tabler/icons/icons/outline"

// InlineClass is the class marker added to inline icons.
const InlineClass = "w-4 h-4"

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Request identifies one icon rendering.
type Request struct {
	Name    string
	Size    int // Zero selects the variant's default size.
	Variant domain.IconVariant
}

// Icon is a rendered icon.
type Icon struct {
	Name    string
	Variant domain.IconVariant
	Size    int
	Markup  string
}

// Loader reads icon assets from a directory of <name>.svg files.
// It keeps no cache: every call reads the asset again.
type Loader struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewLoader creates a Loader reading from dir on the given filesystem.
func NewLoader(fsys afero.Fs, dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fs: fsys, dir: dir, logger: logger}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads and rewrites the requested icon. A missing asset yields an error
// wrapping domain.ErrIconNotFound.
func (l *Loader) Load(ctx context.Context, req Request) (Icon, error) {
	if err := ctx.Err(); err != nil {
		return Icon{}, err
	}
	if !namePattern.MatchString(req.Name) {
		return Icon{}, fmt.Errorf("%w: %q", domain.ErrInvalidIconName, req.Name)
	}
	size := req.Size
	if size == 0 {
		size = req.Variant.DefaultSize()
	}
	if size < 0 {
		return Icon{}, fmt.Errorf("%w: %d", domain.ErrInvalidSize, req.Size)
	}

	raw, err := afero.ReadFile(l.fs, l.path(req.Name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Icon{}, fmt.Errorf("%w: %s", domain.ErrIconNotFound, req.Name)
		}
		return Icon{}, fmt.Errorf("failed to read icon %s: %w", req.Name, err)
	}

	markup, err := Rewrite(raw, optionsFor(req.Variant, size))
	if err != nil {
		return Icon{}, fmt.Errorf("icon %s: %w", req.Name, err)
	}

	return Icon{
		Name:    req.Name,
		Variant: req.Variant,
		Size:    size,
		Markup:  markup,
	}, nil
}

// Inline returns the inline variant of the icon, or an empty string if it
// cannot be loaded. The failure is logged.
func (l *Loader) Inline(ctx context.Context, name string, size int) string {
	icon, err := l.Load(ctx, Request{Name: name, Size: size, Variant: domain.VariantInline})
	if err != nil {
		l.logger.Error("Icon not found", "icon", name, "error", err)
		return ""
	}
	return icon.Markup
}

// Cursor returns the cursor variant of the icon, or an empty string if it
// cannot be loaded. The failure is logged.
func (l *Loader) Cursor(ctx context.Context, name string, size int) string {
	icon, err := l.Load(ctx, Request{Name: name, Size: size, Variant: domain.VariantCursor})
	if err != nil {
		l.logger.Error("Cursor icon not found", "icon", name, "error", err)
		return ""
	}
	return icon.Markup
}

// List returns the names of all icons in the directory, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons in %s: %w", l.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".svg" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".svg"))
	}
	return names, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name+".svg")
}

func optionsFor(variant domain.IconVariant, size int) Options {
	opts := Options{Size: size}
	switch variant {
	case domain.VariantCursor:
		opts.Replace = []Attr{
			{Name: "stroke", Value: "white"},
			{Name: "fill", Value: "black"},
			{Name: "stroke-width", Value: "1"},
		}
	default:
		opts.Set = []Attr{
			{Name: "class", Value: InlineClass},
			{Name: "aria-hidden", Value: "true"},
		}
	}
	return opts
}
