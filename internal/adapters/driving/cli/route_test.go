package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSiteFixture = `
url = "https://host/sites/trials"

[[content_types]]
name = "Document"

[[content_types]]
name = "Safety Document"
parent = "Document"

[[libraries]]
title = "Drop Off Library"
document_library = true
content_types_enabled = true
drop_off = true

[[libraries]]
title = "Clinical Files"
document_library = true
content_types_enabled = true
content_types = ["Safety Document"]

  [[libraries.fields]]
  internal = "Title"
  title = "Title"
  kind = "Text"

[[rules]]
id = "r1"
name = "safety"
content_type = "Safety Document"
target_library = "Clinical Files"
target_folder = "Safety"
priority = 1

[[submissions]]
content_type = "Safety Document"
user = "alice"
source_url = "https://host/sites/trials/Drop Off Library/report.pdf"
content = "pdf-bytes"
final_folder = "https://host/sites/trials/Drop Off Library"
  [submissions.properties]
  Title = "Safety Report"
`

// runCommand executes the root command against a temp fixture and
// returns the captured output. The config path points at a missing
// file so defaults apply.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	fixture := filepath.Join(dir, "site.toml")
	require.NoError(t, os.WriteFile(fixture, []byte(testSiteFixture), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--fixture", fixture, "--config", filepath.Join(dir, "absent.toml")))
	defer func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		fixturePath = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRouteCmd_PlacesSubmission(t *testing.T) {
	out, err := runCommand(t, "route")

	require.NoError(t, err)
	assert.Contains(t, out, "https://host/sites/trials/Clinical Files/Safety/report.pdf")
	assert.Contains(t, out, "RouteDirect")
}

func TestRouteCmd_RequiresFixture(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"route", "--config", filepath.Join(t.TempDir(), "absent.toml")})
	defer func() {
		rootCmd.SetArgs(nil)
		configPath = ""
		fixturePath = ""
	}()

	err := rootCmd.Execute()

	assert.ErrorContains(t, err, "no site fixture")
}
