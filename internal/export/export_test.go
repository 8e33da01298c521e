package export_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/export"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/site"
	"github.com/otherdev/site/internal/storage"
	"github.com/otherdev/site/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildData(t *testing.T, fsys afero.Fs) export.Data {
	t.Helper()
	loader := icons.NewLoader(fsys, testutils.IconsDir, nil)
	set, err := site.BuildIconSet(context.Background(), loader, site.DefaultIconKeys(), nil)
	require.NoError(t, err)
	return export.Data{
		BuildID:     "build-1",
		GeneratedAt: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Metadata:    site.DefaultMetadata(),
		Icons:       set,
	}
}

func TestExporter_JSON(t *testing.T) {
	memFs := testutils.IconFS(t)
	exporter := export.NewExporter(storage.NewAferoStore(memFs), "_data", export.FormatJSON)

	paths, err := exporter.Write(context.Background(), buildData(t, memFs))
	require.NoError(t, err)
	assert.Equal(t, []string{"_data/metadata.json", "_data/icons.json"}, paths)

	raw, err := afero.ReadFile(memFs, "_data/metadata.json")
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "Other Dev®", meta["title"])
	assert.Equal(t, "build-1", meta["buildId"])
	assert.Equal(t, "2026-10-17T12:00:00Z", meta["generatedAt"])
	assert.Equal(t, []any{"en", "de", "ur"}, meta["languages"])
	assert.Equal(t, "hello@otherdev.com", meta["author"].(map[string]any)["email"])
	assert.Equal(t, "Deutsch", meta["localeNames"].(map[string]any)["de"])

	raw, err = afero.ReadFile(memFs, "_data/icons.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"externalLink": "<svg`, "markup is written without html escaping")
	var iconMap map[string]string
	require.NoError(t, json.Unmarshal(raw, &iconMap))
	assert.Len(t, iconMap, 3)
	assert.True(t, strings.HasPrefix(iconMap["linkedin"], "<svg"))
}

func TestExporter_YAML(t *testing.T) {
	memFs := testutils.IconFS(t)
	exporter := export.NewExporter(storage.NewAferoStore(memFs), "_data", export.FormatYAML)

	paths, err := exporter.Write(context.Background(), buildData(t, memFs))
	require.NoError(t, err)
	assert.Equal(t, []string{"_data/metadata.yaml", "_data/icons.yaml"}, paths)

	raw, err := afero.ReadFile(memFs, "_data/metadata.yaml")
	require.NoError(t, err)
	var meta site.Metadata
	require.NoError(t, yaml.Unmarshal(raw, &meta))
	assert.Equal(t, site.DefaultMetadata(), meta)

	raw, err = afero.ReadFile(memFs, "_data/icons.yaml")
	require.NoError(t, err)
	var iconMap map[string]string
	require.NoError(t, yaml.Unmarshal(raw, &iconMap))
	assert.Contains(t, iconMap["instagram"], `aria-hidden="true"`)
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, f)

	f, err = export.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, export.FormatYAML, f)

	_, err = export.ParseFormat("xml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExporter_RemovesOtherFormats(t *testing.T) {
	memFs := testutils.IconFS(t)
	store := storage.NewAferoStore(memFs)
	ctx := context.Background()
	data := buildData(t, memFs)
	require.NoError(t, afero.WriteFile(memFs, "_data/icons.yml", []byte("old: true\n"), 0644))
	require.NoError(t, afero.WriteFile(memFs, "_data/other.json", []byte("{}"), 0644))

	_, err := export.NewExporter(store, "_data", export.FormatJSON).Write(ctx, data)
	require.NoError(t, err)
	_, err = export.NewExporter(store, "_data", export.FormatYAML).Write(ctx, data)
	require.NoError(t, err)

	names, err := store.List(ctx, "_data")
	require.NoError(t, err)
	assert.Equal(t, []string{"icons.yaml", "metadata.yaml", "other.json"}, names)
}
