// Package cursors materializes the cursor images referenced by the site's
// stylesheets as standalone SVG files in the output directory.
package cursors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/storage"
)

// Cursor maps an output file stem to the source icon it is rendered from.
type Cursor struct {
	Name string
	Icon string
}

// DefaultCursors returns the cursors used by the carousel navigation.
func DefaultCursors() []Cursor {
	return []Cursor{
		{Name: "arrow-left", Icon: "circle-arrow-left"},
		{Name: "arrow-right", Icon: "circle-arrow-right"},
	}
}

// File describes one written cursor file.
type File struct {
	Name  string
	Path  string
	Bytes int64
}

// Result summarizes a generation run.
type Result struct {
	Files   []File
	Missing []string // Source icons that could not be loaded.
}

// Generator writes cursor files to an output directory.
type Generator struct {
	loader  *icons.Loader
	store   storage.Store
	outDir  string
	cursors []Cursor
	size    int
	strict  bool
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithCursors replaces the default cursor set.
func WithCursors(c []Cursor) Option {
	return func(g *Generator) { g.cursors = c }
}

// WithSize sets the pixel size of the cursor images.
func WithSize(size int) Option {
	return func(g *Generator) { g.size = size }
}

// WithStrict makes a missing source icon fail the run before anything is written.
func WithStrict(strict bool) Option {
	return func(g *Generator) { g.strict = strict }
}

// WithLogger sets the logger used for progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a Generator writing into outDir.
func NewGenerator(loader *icons.Loader, store storage.Store, outDir string, opts ...Option) *Generator {
	g := &Generator{
		loader:  loader,
		store:   store,
		outDir:  outDir,
		cursors: DefaultCursors(),
		size:    domain.DefaultCursorSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OutDir returns the directory cursor files are written to.
func (g *Generator) OutDir() string {
	return g.outDir
}

// Generate renders every cursor and writes it to <outDir>/<name>.svg,
// overwriting existing files. It is safe to call repeatedly.
//
// A missing source icon produces an empty file and is reported in
// Result.Missing, unless the generator is strict.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	rendered := make([]string, len(g.cursors))
	var result Result

	for i, c := range g.cursors {
		icon, err := g.loader.Load(ctx, icons.Request{Name: c.Icon, Size: g.size, Variant: domain.VariantCursor})
		switch {
		case err == nil:
			rendered[i] = icon.Markup
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Result{}, err
		case g.strict:
			return Result{}, fmt.Errorf("cursor %s: %w", c.Name, err)
		default:
			g.logger.Error("Cursor icon not found", "icon", c.Icon, "cursor", c.Name, "error", err)
			result.Missing = append(result.Missing, c.Icon)
		}
	}

	for i, c := range g.cursors {
		path := filepath.Join(g.outDir, c.Name+".svg")
		n, err := g.store.Save(ctx, path, strings.NewReader(rendered[i]))
		if err != nil {
			return result, fmt.Errorf("failed to write cursor %s: %w", path, err)
		}
		result.Files = append(result.Files, File{Name: c.Name, Path: path, Bytes: n})
		g.logger.Debug("Wrote cursor file", "cursor", c.Name, "path", path, "bytes", n)
	}

	return result, nil
}
