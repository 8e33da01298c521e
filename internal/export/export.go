// Package export writes the build's global data files, the metadata record
// and the icon set, for the static-site generator to pick up.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/site"
	"github.com/otherdev/site/internal/storage"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of the data files.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: data format %q", domain.ErrUnsupportedFormat, s)
	}
}

// Data is everything exported by one build.
type Data struct {
	BuildID     string
	GeneratedAt time.Time
	Metadata    site.Metadata
	Icons       site.IconSet
}

type metadataFile struct {
	site.Metadata `yaml:",inline"`
	LocaleNames   map[string]string `json:"localeNames" yaml:"localeNames"`
	BuildID       string            `json:"buildId" yaml:"buildId"`
	GeneratedAt   time.Time         `json:"generatedAt" yaml:"generatedAt"`
}

// Exporter writes data files into a directory of a Store.
type Exporter struct {
	store  storage.Store
	dir    string
	format Format
}

// NewExporter creates an Exporter.
func NewExporter(store storage.Store, dir string, format Format) *Exporter {
	return &Exporter{store: store, dir: dir, format: format}
}

// dataExts are the extensions a data file may have been written with.
var dataExts = []string{"json", "yaml", "yml"}

// Write encodes data as <dir>/metadata.<ext> and <dir>/icons.<ext> and
// returns the written paths. Existing files are replaced, and copies left in
// another format by an earlier build are removed so the site generator sees
// one file per name.
func (e *Exporter) Write(ctx context.Context, data Data) ([]string, error) {
	files := []struct {
		name  string
		value any
	}{
		{"metadata", metadataFile{
			Metadata:    data.Metadata,
			LocaleNames: data.Metadata.LocaleNames(),
			BuildID:     data.BuildID,
			GeneratedAt: data.GeneratedAt.UTC(),
		}},
		{"icons", data.Icons.Map()},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		body, err := e.encode(f.value)
		if err != nil {
			return paths, fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		path := filepath.Join(e.dir, f.name+"."+string(e.format))
		if _, err := e.store.Save(ctx, path, bytes.NewReader(body)); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)

		if err := e.removeStale(ctx, f.name); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

func (e *Exporter) removeStale(ctx context.Context, name string) error {
	for _, ext := range dataExts {
		if ext == string(e.format) {
			continue
		}
		path := filepath.Join(e.dir, name+"."+ext)
		if err := e.store.Delete(ctx, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale %s: %w", path, err)
		}
	}
	return nil
}

func (e *Exporter) encode(v any) ([]byte, error) {
	switch e.format {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: data format %q", domain.ErrUnsupportedFormat, e.format)
	}
}
