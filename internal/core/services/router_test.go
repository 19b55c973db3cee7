package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidocs/docrouter/internal/adapters/driven/storage/memory"
	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/logger"
)

type routeFixture struct {
	store  *memory.ContentStore
	rules  *memory.RuleStore
	engine *Engine
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()
	store := memory.NewContentStore()
	store.AddContentType(domain.ContentType{Name: "Clinical Document", ParentName: "Document"})
	store.AddContentType(domain.ContentType{Name: "Document", ParentName: "Document"})
	store.AddContentType(domain.ContentType{Name: "Safety Document", ParentName: "Clinical Document"})

	store.AddLibrary(domain.Library{
		Title: "Drop Off", WebURL: "https://host/site",
		IsDocumentLibrary: true, ContentTypesEnabled: true, DropOff: true,
	})
	store.AddLibrary(domain.Library{
		Title: "Clinical Files", WebURL: "https://host/site",
		IsDocumentLibrary: true, ContentTypesEnabled: true,
		ContentTypeNames: []string{"Safety Document", "Clinical Document"},
	})
	store.SetFields("Clinical Files", []domain.Field{
		{InternalName: "Title", Title: "Title", Kind: domain.KindText},
		{InternalName: "Study", Title: "Study", Kind: domain.KindText},
		{InternalName: "DocSource", Title: "Document Source", Kind: domain.KindURL},
	})

	rules := memory.NewRuleStore()
	dir := memory.NewDirectory()
	terms := memory.NewTermStore()
	log := logger.Nop{}

	transformer := NewTransformer(terms, NewLookupResolver(store, log), NewPrincipalResolver(dir, log), log)
	copier := NewCopyEngine(store, transformer, CopyOptions{}, log)
	engine := NewEngine(
		store,
		NewRuleTable(rules, log),
		NewHierarchy(store, log),
		NewEligibility(store, log),
		NewFolderPath(store, log),
		copier,
		NewPropertyReader(log),
		log,
	)
	return &routeFixture{store: store, rules: rules, engine: engine}
}

func submission(contentType string) domain.Submission {
	return domain.Submission{
		ContentTypeName: contentType,
		UserName:        "alice",
		Content:         []byte("pdf-bytes"),
		SourceURL:       "https://host/site/Drop Off/report.pdf",
		Properties:      []domain.Property{{Name: "Title", Value: "Safety Report"}},
		FinalFolder:     "https://host/site/Drop Off",
	}
}

func TestRouteRejectsInvalidSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)

	_, err := f.engine.Route(ctx, domain.Submission{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sub := submission("Safety Document")
	sub.Content = nil
	_, err = f.engine.Route(ctx, sub)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sub = submission("Safety Document")
	sub.FinalFolder = ""
	_, err = f.engine.Route(ctx, sub)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRouteUnknownContentTypeContinues(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)

	result, err := f.engine.Route(ctx, submission("Mystery Type"))
	require.NoError(t, err)
	assert.Equal(t, domain.ContinueProcessing, result.Signal)
	assert.Empty(t, result.NewURL)
}

func TestRouteViaRuleWithTargetFolder(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files", TargetFolder: "Safety/SAEs",
		Priority: 1, Enabled: true,
	}))

	result, err := f.engine.Route(ctx, submission("Safety Document"))
	require.NoError(t, err)
	assert.Equal(t, domain.CancelFurtherProcessing, result.Signal)
	assert.Equal(t, domain.RouteDirect, result.Decision.Mode)
	assert.Equal(t, "https://host/site/Clinical Files/Safety/SAEs/report.pdf", result.NewURL)

	item, err := f.store.ItemForFile(ctx, result.NewURL)
	require.NoError(t, err)
	assert.Equal(t, "Safety Document", item.ContentTypeName)
	assert.Equal(t, "Safety Report", item.Value("Title"))
	assert.Contains(t, item.Value("DocSource"), "Link to: report.pdf")
}

func TestRouteViaEligibilityUsesLibraryRoot(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)

	// Level properties never trigger drill-down without a matched rule.
	sub := submission("Safety Document")
	sub.Properties = append(sub.Properties,
		domain.Property{Name: StudyPropertyName, Value: "3;#ST-001"},
		domain.Property{Name: SectionPropertyName, Value: "Safety"},
		domain.Property{Name: SubsectionPropertyName, Value: "SAEs"},
		domain.Property{Name: DocumentTypePropertyName, Value: "Narrative"},
	)

	result, err := f.engine.Route(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, domain.CancelFurtherProcessing, result.Signal)
	assert.Nil(t, result.Decision.Rule)
	assert.Equal(t, "https://host/site/Clinical Files/report.pdf", result.NewURL)
	assert.Empty(t, result.Decision.FolderPath)
}

func TestRouteRuleWithDrillDownOnLevelProperties(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files",
		Priority:      1, Enabled: true,
	}))

	sub := submission("Safety Document")
	sub.Properties = append(sub.Properties,
		domain.Property{Name: StudyPropertyName, Value: "3;#ST-001"},
		domain.Property{Name: SectionPropertyName, Value: "Safety"},
		domain.Property{Name: SubsectionPropertyName, Value: "SAEs"},
		domain.Property{Name: DocumentTypePropertyName, Value: "Narrative"},
	)

	result, err := f.engine.Route(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, domain.CancelFurtherProcessing, result.Signal)
	assert.Equal(t, "https://host/site/Clinical Files/ST-001/Safety/SAEs/Narrative/report.pdf", result.NewURL)
	assert.Equal(t, []string{"ST-001", "Safety", "SAEs", "Narrative"}, result.Decision.FolderPath)
}

func TestRouteRuleWithoutEligibleLibraryContinues(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	f.store.AddContentType(domain.ContentType{Name: "Orphan Type", ParentName: "Orphan Type"})
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "orphan", ContentTypeName: "Orphan Type",
		TargetLibrary: "Clinical Files", TargetFolder: "Misc",
		Priority: 1, Enabled: true,
	}))

	// No library carries the type, so the rule never comes into play.
	result, err := f.engine.Route(ctx, submission("Orphan Type"))
	require.NoError(t, err)
	assert.Equal(t, domain.ContinueProcessing, result.Signal)
	assert.Equal(t, domain.NoRoute, result.Decision.Mode)
	assert.Empty(t, result.NewURL)
}

func TestRouteViaParentContentType(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	f.store.AddContentType(domain.ContentType{Name: "SAE Narrative", ParentName: "Safety Document"})

	// No library carries SAE Narrative, but its parent routes.
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files", TargetFolder: "Safety",
		Priority: 1, Enabled: true,
	}))

	result, err := f.engine.Route(ctx, submission("SAE Narrative"))
	require.NoError(t, err)
	assert.Equal(t, domain.CancelFurtherProcessing, result.Signal)
	assert.Equal(t, domain.RouteViaParent, result.Decision.Mode)

	// The destination library gains the exact content type.
	lib, err := f.store.LibraryByTitle(ctx, "Clinical Files")
	require.NoError(t, err)
	assert.True(t, lib.HasContentType("SAE Narrative"))
}

func TestRouteNoRouteContinues(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	f.store.AddContentType(domain.ContentType{Name: "Invoice", ParentName: "Document"})

	result, err := f.engine.Route(ctx, submission("Invoice"))
	require.NoError(t, err)
	assert.Equal(t, domain.ContinueProcessing, result.Signal)
	assert.Equal(t, domain.NoRoute, result.Decision.Mode)
}

func TestRouteCollisionRenamesWithTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	f.engine.now = func() time.Time {
		return time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	}
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files", TargetFolder: "Safety",
		Priority: 1, Enabled: true,
	}))

	first, err := f.engine.Route(ctx, submission("Safety Document"))
	require.NoError(t, err)
	second, err := f.engine.Route(ctx, submission("Safety Document"))
	require.NoError(t, err)

	assert.Equal(t, "https://host/site/Clinical Files/Safety/report.pdf", first.NewURL)
	assert.Equal(t, "https://host/site/Clinical Files/Safety/report (240305103000).pdf", second.NewURL)
}

func TestRouteCopiesDropOffItemMetadata(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	f.store.SetFields("Drop Off", []domain.Field{
		{InternalName: "Study0", Title: "Study", Kind: domain.KindText},
	})
	f.store.AddItem("Drop Off", domain.Item{
		Name:   "report.pdf",
		Values: map[string]string{"Study0": "ST-001"},
	})
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files", TargetFolder: "Safety",
		Priority: 1, Enabled: true,
	}))

	result, err := f.engine.Route(ctx, submission("Safety Document"))
	require.NoError(t, err)

	item, err := f.store.ItemForFile(ctx, result.NewURL)
	require.NoError(t, err)
	assert.Equal(t, "ST-001", item.Value("Study"))
}

func TestRouteAppliesPropertyBag(t *testing.T) {
	ctx := context.Background()
	f := newRouteFixture(t)
	require.NoError(t, f.rules.Save(ctx, domain.RoutingRule{
		ID: "r1", Name: "safety", ContentTypeName: "Safety Document",
		TargetLibrary: "Clinical Files", TargetFolder: "Safety",
		Priority: 1, Enabled: true,
	}))

	bag := `<Properties>` +
		`<Property><Name>Study</Name><Type>Text</Type><Value>3;#ST-001</Value></Property>` +
		`<Property><Name>vti_title</Name><Type>Text</Type><Value>ignored</Value></Property>` +
		`</Properties>`
	sub := submission("Safety Document")
	sub.Properties = append(sub.Properties, domain.Property{Name: RoutingPropertiesKey, Value: bag})

	result, err := f.engine.Route(ctx, sub)
	require.NoError(t, err)

	item, err := f.store.ItemForFile(ctx, result.NewURL)
	require.NoError(t, err)
	assert.Equal(t, "ST-001", item.Value("Study"))
}
