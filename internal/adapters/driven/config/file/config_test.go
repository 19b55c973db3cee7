package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Config{
		SiteURL:          "https://host/site",
		DropOffLibrary:   "Intake",
		OmitFields:       []string{"Title", "Internal Notes"},
		VersionedUpdates: true,
		RulesDataDir:     "/var/lib/docrouter",
		FixturePath:      "site.toml",
		Verbose:          true,
	}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("site_url = [broken"), 0600))
	_, err := Load(bad)
	assert.Error(t, err)
}
