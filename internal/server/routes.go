package server

import (
	"errors"
	"io/fs"
	"net/http"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/middleware"
	"github.com/otherdev/site/web/src/templates/pages"
)

const svgContentType = "image/svg+xml"

var outputFilePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*\.svg$`)

func (s *Server) routes() {
	s.E.GET("/", s.previewPage)
	s.E.GET("/preview/grid", s.previewGrid)
	s.E.GET("/icons/:file", s.outputFile)
	s.E.GET("/render/:name", s.renderIcon)
	s.E.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) previewPage(c echo.Context) error {
	data, err := s.previewData(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "preview", pages.Preview(data))
}

func (s *Server) previewGrid(c echo.Context) error {
	data, err := s.previewData(c.Request().Context())
	if err != nil {
		return err
	}
	return s.deps.Renderer.RenderPage(c, http.StatusOK, pages.Grid(data))
}

// outputFile serves a generated file from the output directory.
func (s *Server) outputFile(c echo.Context) error {
	file := c.Param("file")
	if !outputFilePattern.MatchString(file) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file name")
	}

	ctx := c.Request().Context()
	rc, err := s.openOutput(ctx, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.NewHTTPError(http.StatusNotFound, "file not built")
		}
		middleware.FromContext(ctx).Error("Failed to open output file", "file", file, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open file")
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, svgContentType, rc)
}

// renderIcon renders an icon on demand: /render/:name?size=24&variant=cursor
func (s *Server) renderIcon(c echo.Context) error {
	req := icons.Request{Name: c.Param("name")}

	if raw := c.QueryParam("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size must be an integer")
		}
		req.Size = size
	}
	variant, err := domain.ParseIconVariant(c.QueryParam("variant"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Variant = variant

	icon, err := s.deps.Loader.Load(c.Request().Context(), req)
	switch {
	case errors.Is(err, domain.ErrIconNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "icon not found")
	case errors.Is(err, domain.ErrInvalidIconName), errors.Is(err, domain.ErrInvalidSize):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		middleware.FromContext(c.Request().Context()).Error("Failed to render icon", "icon", req.Name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render icon")
	}

	return c.Blob(http.StatusOK, svgContentType, []byte(icon.Markup))
}
