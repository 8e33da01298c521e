package server

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/otherdev/site/internal/cursors"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/middleware"
	"github.com/otherdev/site/internal/rendering"
	"github.com/otherdev/site/internal/site"
	"github.com/otherdev/site/internal/storage"
	"github.com/otherdev/site/web"
	"github.com/otherdev/site/web/src/templates/pages"
)

// Dependencies holds the services the dev server reads from.
type Dependencies struct {
	Loader    *icons.Loader
	Store     storage.Store
	OutputDir string
	Cursors   []cursors.Cursor
	IconKeys  []site.IconKey
	Metadata  func() (site.Metadata, error)
	Renderer  rendering.Renderer
	// Poll enables htmx refreshing of the preview grid.
	Poll bool
}

var discardLogger = slog.New(slog.DiscardHandler)

// Server is the development server for previewing build output.
type Server struct {
	E    *echo.Echo
	deps Dependencies
}

// New creates a Server with its routes registered.
func New(deps Dependencies) *Server {
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewUniversalRenderer()
	}
	if deps.Cursors == nil {
		deps.Cursors = cursors.DefaultCursors()
	}
	if deps.IconKeys == nil {
		deps.IconKeys = site.DefaultIconKeys()
	}
	if deps.Metadata == nil {
		deps.Metadata = func() (site.Metadata, error) { return site.DefaultMetadata(), nil }
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s := &Server{E: e, deps: deps}
	s.routes()
	return s
}

// previewData collects what the preview page shows from the current state of
// the icon directory and the output store.
func (s *Server) previewData(ctx context.Context) (pages.PreviewData, error) {
	meta, err := s.deps.Metadata()
	if err != nil {
		return pages.PreviewData{}, err
	}
	// The page is polled, so load failures are reported once per request at
	// debug level instead of as errors.
	set, err := site.BuildIconSet(ctx, s.deps.Loader, s.deps.IconKeys, discardLogger)
	if err != nil {
		return pages.PreviewData{}, err
	}
	if missing := set.Missing(); len(missing) > 0 {
		middleware.FromContext(ctx).Debug("Preview has missing icons", "missing", missing)
	}

	previews := make([]pages.CursorPreview, 0, len(s.deps.Cursors))
	for _, c := range s.deps.Cursors {
		file := c.Name + ".svg"
		previews = append(previews, pages.CursorPreview{
			Name:   c.Name,
			URL:    "/icons/" + file,
			Markup: s.readOutput(ctx, file),
		})
	}

	return pages.PreviewData{
		Metadata: meta,
		Icons:    set,
		Cursors:  previews,
		Poll:     s.deps.Poll,
	}, nil
}

// openOutput opens a generated file by its name in the output directory.
func (s *Server) openOutput(ctx context.Context, file string) (io.ReadCloser, error) {
	return s.deps.Store.Open(ctx, filepath.Join(s.deps.OutputDir, file))
}

func (s *Server) readOutput(ctx context.Context, file string) string {
	rc, err := s.openOutput(ctx, file)
	if err != nil {
		return ""
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}
	return string(b)
}
