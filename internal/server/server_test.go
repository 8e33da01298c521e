package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/otherdev/site/internal/cursors"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/storage"
	"github.com/otherdev/site/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outDir = "public/icons"

func newTestServer(t *testing.T, fsys afero.Fs, poll bool) *Server {
	t.Helper()
	loader := icons.NewLoader(fsys, testutils.IconsDir, nil)
	store := storage.NewAferoStore(fsys)
	return New(Dependencies{
		Loader:    loader,
		Store:     store,
		OutputDir: outDir,
		Poll:      poll,
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_RenderIcon(t *testing.T) {
	s := newTestServer(t, testutils.IconFS(t), false)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   []string
	}{
		{"inline default", "/render/external-link", http.StatusOK, []string{`width="16"`, `class="w-4 h-4"`}},
		{"cursor with size", "/render/circle-arrow-left?variant=cursor&size=48", http.StatusOK, []string{`width="48"`, `fill="black"`}},
		{"missing icon", "/render/nope", http.StatusNotFound, nil},
		{"bad size", "/render/external-link?size=big", http.StatusBadRequest, nil},
		{"negative size", "/render/external-link?size=-1", http.StatusBadRequest, nil},
		{"bad variant", "/render/external-link?variant=huge", http.StatusBadRequest, nil},
		{"bad name", "/render/Bad_Name", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, svgContentType, rec.Header().Get("Content-Type"))
			}
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestServer_OutputFile(t *testing.T) {
	memFs := testutils.IconFS(t)
	s := newTestServer(t, memFs, false)

	rec := get(t, s, "/icons/arrow-left.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code, "nothing has been built yet")

	gen := cursors.NewGenerator(icons.NewLoader(memFs, testutils.IconsDir, nil), storage.NewAferoStore(memFs), outDir)
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	rec = get(t, s, "/icons/arrow-left.svg")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, svgContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `stroke="white"`)

	rec = get(t, s, "/icons/secret.txt")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Preview(t *testing.T) {
	memFs := testutils.IconFS(t, "external-link", "brand-linkedin", "circle-arrow-left", "circle-arrow-right")
	gen := cursors.NewGenerator(icons.NewLoader(memFs, testutils.IconsDir, nil), storage.NewAferoStore(memFs), outDir)
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)

	t.Run("full page", func(t *testing.T) {
		s := newTestServer(t, memFs, true)
		require.NotNil(t, s.E.Renderer, "pages render through the echo renderer")
		rec := get(t, s, "/")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
		assert.Contains(t, body, "<title>Icons - Other Dev®</title>")
		assert.Contains(t, body, "Brand Linkedin")
		assert.Contains(t, body, `class="w-4 h-4"`)
		assert.Contains(t, body, "brand-instagram.svg is missing")
		assert.Contains(t, body, "cursor: url(/icons/arrow-left.svg) 16 16, auto")
		assert.Contains(t, body, `hx-get="/preview/grid"`)
		assert.Contains(t, body, "Deutsch (de)")
	})

	t.Run("grid partial", func(t *testing.T) {
		s := newTestServer(t, memFs, false)
		rec := get(t, s, "/preview/grid")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<html")
		assert.Contains(t, rec.Body.String(), "<h2>Cursors</h2>")
	})

	t.Run("missing icons are logged at debug level", func(t *testing.T) {
		var logs bytes.Buffer
		orig := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
		t.Cleanup(func() { slog.SetDefault(orig) })

		s := newTestServer(t, memFs, true)
		for range 3 {
			require.Equal(t, http.StatusOK, get(t, s, "/preview/grid").Code)
		}
		assert.NotContains(t, logs.String(), "level=ERROR")
		assert.Equal(t, 3, strings.Count(logs.String(), `msg="Preview has missing icons"`))
	})

	t.Run("no polling", func(t *testing.T) {
		s := newTestServer(t, memFs, false)
		rec := get(t, s, "/")
		assert.NotContains(t, rec.Body.String(), "hx-get")
	})
}

func TestServer_StaticAndHealth(t *testing.T) {
	s := newTestServer(t, testutils.IconFS(t), false)

	rec := get(t, s, "/static/preview.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".w-4")

	rec = get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
