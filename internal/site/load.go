package site

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/otherdev/site/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadMetadataFile reads a YAML or TOML file and applies its fields over
// DefaultMetadata. Fields missing from the file keep their default value.
// An empty path returns the defaults.
func LoadMetadataFile(fsys afero.Fs, path string) (Metadata, error) {
	meta := DefaultMetadata()
	if path == "" {
		return meta, nil
	}

	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &meta)
	case ".toml":
		err = toml.Unmarshal(raw, &meta)
	default:
		return Metadata{}, fmt.Errorf("%w: metadata file %s", domain.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to decode metadata file %s: %w", path, err)
	}
	return meta, nil
}
