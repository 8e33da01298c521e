package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against an in-memory icon tree.
func run(t *testing.T, memFs afero.Fs, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("SITE_ICONS_DIR", testutils.IconsDir)
	t.Setenv("LOG_LEVEL", "error")

	orig := newFs
	newFs = func() afero.Fs { return memFs }
	t.Cleanup(func() { newFs = orig })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Equal(t, "sitebuild v"+version+"\n", out)
}

func TestBuild(t *testing.T) {
	memFs := testutils.IconFS(t)

	out, err := run(t, memFs, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "cursor  public/icons/arrow-left.svg")
	assert.Contains(t, out, "data    _data/icons.json")
	assert.NotContains(t, out, "missing")

	content, err := afero.ReadFile(memFs, "public/icons/arrow-right.svg")
	require.NoError(t, err)
	assert.Contains(t, string(content), `stroke="white"`)
}

func TestIcon(t *testing.T) {
	memFs := testutils.IconFS(t)

	t.Run("renders the requested variant", func(t *testing.T) {
		out, err := run(t, memFs, "icon", "circle-arrow-left", "--variant", "cursor", "--size", "48")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<svg"))
		assert.Contains(t, out, `width="48"`)
		assert.Contains(t, out, `fill="black"`)
	})

	t.Run("missing icon fails", func(t *testing.T) {
		_, err := run(t, memFs, "icon", "does-not-exist")
		assert.ErrorIs(t, err, domain.ErrIconNotFound)
	})
}

func TestIconsList(t *testing.T) {
	out, err := run(t, testutils.IconFS(t, "external-link", "brand-instagram"), "icons", "list")
	require.NoError(t, err)
	assert.Equal(t, "brand-instagram\nexternal-link\n", out)
}

func TestMetadata(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "metadata", "--format", "yaml", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "contactEmail:")
	assert.Contains(t, out, "serviceAreas:")
}
