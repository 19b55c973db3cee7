package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

const sampleFixture = `
url = "https://host/sites/trials"
groups = ["Reviewers"]
users = ["Alice Adams"]
auto_register_users = true

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

  [[libraries.items]]
  name = "seed.pdf"
  content_type = "Safety Document"
    [libraries.items.values]
    Title = "Seeded"

[[term_sets]]
id = "phases"

  [[term_sets.terms]]
  label = "Phase I"
  guid = "1f3c"
  wss_id = 12

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

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFixture), 0600))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	ctx := context.Background()
	site, err := Load(writeFixture(t))
	require.NoError(t, err)

	stores := site.Build()

	ct, err := stores.Content.ContentTypeByName(ctx, "Safety Document")
	require.NoError(t, err)
	assert.Equal(t, "Document", ct.ParentName)

	root, err := stores.Content.ContentTypeByName(ctx, "Document")
	require.NoError(t, err)
	assert.Equal(t, "Document", root.ParentName, "missing parent defaults to self")

	libs, err := stores.Content.Libraries(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 2)
	assert.True(t, libs[0].DropOff)

	item, err := stores.Content.ItemForFile(ctx, "https://host/sites/trials/Clinical Files/seed.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Seeded", item.Value("Title"))

	term, err := stores.Terms.FindTerm(ctx, "phases", "Phase I")
	require.NoError(t, err)
	assert.Equal(t, 12, term.WssID)

	rules, err := stores.Rules.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Enabled)
	assert.Equal(t, "https://host/sites/trials", rules[0].WebURL)

	group, err := stores.Directory.GroupByName(ctx, "Reviewers")
	require.NoError(t, err)
	assert.True(t, group.IsGroup)
}

func TestDomainSubmissions(t *testing.T) {
	site, err := Load(writeFixture(t))
	require.NoError(t, err)

	subs := site.DomainSubmissions()
	require.Len(t, subs, 1)
	assert.Equal(t, "Safety Document", subs[0].ContentTypeName)
	assert.Equal(t, []byte("pdf-bytes"), subs[0].Content)
	assert.Equal(t, []domain.Property{{Name: "Title", Value: "Safety Report"}}, subs[0].Properties)
	assert.Equal(t, "https://host/sites/trials/Drop Off Library", subs[0].FinalFolder)
}

func TestLoadRequiresURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	require.NoError(t, os.WriteFile(path, []byte(`groups = ["g"]`), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
