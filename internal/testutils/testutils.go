package testutils

import (
	"embed"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// IconsDir is the icon directory the fixtures are installed into.
const IconsDir = "node_modules/@tabler/icons/icons/outline"

//go:embed testdata/*.svg
var fixtures embed.FS

// FixtureNames lists the Tabler icons available as fixtures.
var FixtureNames = []string{
	"brand-instagram",
	"brand-linkedin",
	"circle-arrow-left",
	"circle-arrow-right",
	"external-link",
}

// Fixture returns the raw markup of a fixture icon.
func Fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := fs.ReadFile(fixtures, "testdata/"+name+".svg")
	if err != nil {
		t.Fatalf("missing fixture %s: %v", name, err)
	}
	return b
}

// IconFS returns an in-memory filesystem with the named fixtures installed
// under IconsDir. With no names, every fixture is installed.
func IconFS(t *testing.T, names ...string) afero.Fs {
	t.Helper()
	if len(names) == 0 {
		names = FixtureNames
	}

	memFs := afero.NewMemMapFs()
	if err := memFs.MkdirAll(IconsDir, 0755); err != nil {
		t.Fatalf("failed to create icon dir: %v", err)
	}
	for _, name := range names {
		path := filepath.Join(IconsDir, name+".svg")
		if err := afero.WriteFile(memFs, path, Fixture(t, name), 0644); err != nil {
			t.Fatalf("failed to install fixture %s: %v", name, err)
		}
	}
	return memFs
}

// RootTag returns the opening tag of the first element in markup.
func RootTag(markup string) string {
	start := -1
	for i := 0; i < len(markup); i++ {
		if markup[i] == '<' && i+1 < len(markup) && markup[i+1] != '?' && markup[i+1] != '!' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	for j := start; j < len(markup); j++ {
		if markup[j] == '>' {
			return markup[start : j+1]
		}
	}
	return ""
}
