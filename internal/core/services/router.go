package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/core/ports/driving"
	"github.com/clinidocs/docrouter/internal/logger"
)

// Level property titles used for folder drill-down when a rule names no
// target folder.
const (
	StudyPropertyName        = "Study"
	SectionPropertyName      = "Section"
	SubsectionPropertyName   = "Subsection"
	DocumentTypePropertyName = "DocumentType"
)

// renameStampLayout is the timestamp appended to a colliding file name.
const renameStampLayout = "060102150405"

// Engine routes one submitted document: it computes the destination
// from the rule table and library eligibility, ensures the folder
// chain, places the file, and copies the metadata across.
type Engine struct {
	store       driven.ContentStore
	rules       *RuleTable
	hierarchy   *Hierarchy
	eligibility *Eligibility
	folders     *FolderPath
	copier      driving.Copier
	reader      *PropertyReader
	log         logger.Logger
	now         func() time.Time
}

var _ driving.Router = (*Engine)(nil)

// NewEngine wires the routing engine from its collaborating services.
func NewEngine(
	store driven.ContentStore,
	rules *RuleTable,
	hierarchy *Hierarchy,
	eligibility *Eligibility,
	folders *FolderPath,
	copier driving.Copier,
	reader *PropertyReader,
	log logger.Logger,
) *Engine {
	return &Engine{
		store:       store,
		rules:       rules,
		hierarchy:   hierarchy,
		eligibility: eligibility,
		folders:     folders,
		copier:      copier,
		reader:      reader,
		log:         log,
		now:         time.Now,
	}
}

// Route computes and applies the placement for a submission.
//
// A submission whose content type the site does not know yields
// ContinueProcessing so default placement can proceed; so does one no
// rule or eligible library accepts. Failures while applying a computed
// decision yield RejectFile with the failure in the details, keeping
// the document available for manual remediation. The returned error is
// reserved for invalid input.
func (e *Engine) Route(ctx context.Context, sub domain.Submission) (*domain.RoutingResult, error) {
	if sub.ContentTypeName == "" || sub.Properties == nil || len(sub.Content) == 0 || sub.FinalFolder == "" {
		return nil, fmt.Errorf("%w: submission requires content type, properties, content and a destination folder", domain.ErrInvalidInput)
	}

	ct, err := e.store.ContentTypeByName(ctx, sub.ContentTypeName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			e.log.Low("content type %q not registered; leaving submission to default placement in %s", sub.ContentTypeName, sub.FinalFolder)
			return &domain.RoutingResult{
				Signal:  domain.ContinueProcessing,
				Details: fmt.Sprintf("content type %q not registered on site; default placement in %s", sub.ContentTypeName, sub.FinalFolder),
			}, nil
		}
		return nil, fmt.Errorf("resolving content type %q: %w", sub.ContentTypeName, err)
	}

	decision, err := e.decide(ctx, ct)
	if err != nil {
		if errors.Is(err, domain.ErrNoRoute) {
			e.log.Low("no route for content type %q", ct.Name)
			return &domain.RoutingResult{
				Signal:   domain.ContinueProcessing,
				Decision: domain.Decision{Mode: domain.NoRoute},
				Details:  fmt.Sprintf("no eligible library carries %q; default placement in %s", ct.Name, sub.FinalFolder),
			}, nil
		}
		return e.reject(err), nil
	}

	result, err := e.apply(ctx, sub, ct, decision)
	if err != nil {
		return e.reject(err), nil
	}
	return result, nil
}

// reject converts an apply-phase failure into the standardized
// remediation outcome.
func (e *Engine) reject(err error) *domain.RoutingResult {
	e.log.Unexpected("routing", err)
	return &domain.RoutingResult{
		Signal:  domain.RejectFile,
		Details: "Failed to route record: " + err.Error(),
	}
}

// decide computes the move plan for a content type. An exact match
// beats any ancestor match, and within each a rule beats bare library
// eligibility.
func (e *Engine) decide(ctx context.Context, ct *domain.ContentType) (domain.Decision, error) {
	if d, ok, err := e.decideFor(ctx, ct.Name, domain.RouteDirect); err != nil || ok {
		return d, err
	}
	ancestor, err := e.hierarchy.NearestDistinctAncestor(ctx, ct.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Decision{}, domain.ErrNoRoute
		}
		return domain.Decision{}, err
	}
	if d, ok, err := e.decideFor(ctx, ancestor.Name, domain.RouteViaParent); err != nil || ok {
		return d, err
	}
	return domain.Decision{}, domain.ErrNoRoute
}

// decideFor tries one content type name. Library eligibility gates the
// whole row: without an eligible library the rule table is not even
// consulted and the name falls through to the ancestor tests. With one,
// a matching rule picks the destination; otherwise the first eligible
// library does.
func (e *Engine) decideFor(ctx context.Context, name string, mode domain.RouteMode) (domain.Decision, bool, error) {
	libs, err := e.eligibility.LibrariesFor(ctx, name)
	if err != nil {
		return domain.Decision{}, false, err
	}
	if len(libs) == 0 {
		return domain.Decision{}, false, nil
	}
	rule, err := e.rules.Match(ctx, name)
	if err == nil {
		lib, err := e.store.LibraryByTitle(ctx, rule.TargetLibrary)
		if err != nil {
			return domain.Decision{}, false, fmt.Errorf("rule %q targets library %q: %w", rule.Name, rule.TargetLibrary, err)
		}
		return domain.Decision{
			Mode:       mode,
			Rule:       rule,
			Library:    lib,
			FolderPath: splitFolderPath(rule.TargetFolder),
		}, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Decision{}, false, err
	}
	return domain.Decision{Mode: mode, Library: &libs[0]}, true, nil
}

// apply carries out a computed decision: folder resolution, content
// type attachment, file placement, and the metadata copy.
func (e *Engine) apply(ctx context.Context, sub domain.Submission, ct *domain.ContentType, decision domain.Decision) (*domain.RoutingResult, error) {
	props := sub.PropertyMap()

	folderURL, folderPath, err := e.resolveFolder(ctx, decision, props)
	if err != nil {
		return nil, err
	}
	decision.FolderPath = folderPath

	if !decision.Library.HasContentType(ct.Name) {
		if err := e.store.AttachContentType(ctx, decision.Library.Title, ct.Name); err != nil {
			return nil, fmt.Errorf("attaching content type %q to %q: %w", ct.Name, decision.Library.Title, err)
		}
	}

	name, err := e.placementName(ctx, folderURL, sub.SourceURL)
	if err != nil {
		return nil, err
	}
	item, err := e.store.CreateFile(ctx, folderURL, name, sub.Content)
	if err != nil {
		return nil, fmt.Errorf("placing %q in %s: %w", name, folderURL, err)
	}
	item.ContentTypeName = ct.Name
	if item.Values == nil {
		item.Values = make(map[string]string)
	}

	warnings, err := e.copyMetadata(ctx, sub, props, item, decision.Library.Title)
	if err != nil {
		return nil, err
	}

	e.log.Low("routed %q to %s (%s)", name, item.URL, decision.Mode)
	return &domain.RoutingResult{
		Signal:   domain.CancelFurtherProcessing,
		Decision: decision,
		NewURL:   item.URL,
		Warnings: warnings,
		Details:  fmt.Sprintf("routed to %s via %s", item.URL, decision.Mode),
	}, nil
}

// resolveFolder picks the destination folder. A library-only match
// always lands at the library root. A matched rule uses its explicit
// path when present, else the four-level drill-down when the submission
// carries any level property, else the library root.
func (e *Engine) resolveFolder(ctx context.Context, decision domain.Decision, props map[string]string) (string, []string, error) {
	if decision.Rule == nil {
		return decision.Library.URL(), nil, nil
	}
	if len(decision.FolderPath) > 0 {
		url, err := e.store.EnsureFolder(ctx, decision.Library.Title, decision.FolderPath)
		if err != nil {
			return "", nil, fmt.Errorf("ensuring rule folder: %w", err)
		}
		return url, decision.FolderPath, nil
	}
	study := props[StudyPropertyName]
	section := props[SectionPropertyName]
	subsection := props[SubsectionPropertyName]
	docType := props[DocumentTypePropertyName]
	if study == "" && section == "" && subsection == "" && docType == "" {
		return decision.Library.URL(), nil, nil
	}
	url, err := e.folders.Resolve(ctx, decision.Library.Title, study, section, subsection, docType)
	if err != nil {
		return "", nil, err
	}
	return url, strings.Split(strings.TrimPrefix(url, decision.Library.URL()+"/"), "/"), nil
}

// placementName derives the destination file name, appending a UTC
// timestamp when the folder already holds a file of that name.
func (e *Engine) placementName(ctx context.Context, folderURL, sourceURL string) (string, error) {
	name := path.Base(sourceURL)
	if name == "." || name == "/" {
		return "", fmt.Errorf("%w: submission source url %q has no file name", domain.ErrInvalidInput, sourceURL)
	}
	exists, err := e.store.FileExists(ctx, folderURL, name)
	if err != nil {
		return "", fmt.Errorf("checking for %q in %s: %w", name, folderURL, err)
	}
	if !exists {
		return name, nil
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	stamped := fmt.Sprintf("%s (%s)%s", base, e.now().UTC().Format(renameStampLayout), ext)
	e.log.Low("renaming %q to %q to avoid a collision", name, stamped)
	return stamped, nil
}

// copyMetadata fills the routed item: first the submission's own
// properties joined against the destination schema, then the full field
// copy from the drop-off item when one backs the source file.
func (e *Engine) copyMetadata(ctx context.Context, sub domain.Submission, props map[string]string, item *domain.Item, libraryTitle string) ([]domain.FieldWarning, error) {
	fields, err := e.store.Fields(ctx, libraryTitle)
	if err != nil {
		return nil, fmt.Errorf("reading destination schema %q: %w", libraryTitle, err)
	}
	for _, f := range fields {
		if !domain.IsCopyTarget(f) {
			continue
		}
		if f.Title == DocumentSourceTitle {
			item.Values[f.InternalName] = documentSourceValue(f, &domain.Item{URL: sub.SourceURL, Name: path.Base(sub.SourceURL)})
			continue
		}
		raw, ok := props[f.InternalName]
		if !ok || raw == "" {
			continue
		}
		item.Values[f.InternalName] = stripRefPrefix(raw)
	}
	if bag := props[RoutingPropertiesKey]; bag != "" {
		e.applyPropertyBag(bag, fields, item)
	}
	if err := e.store.SystemUpdate(ctx, item); err != nil {
		return nil, fmt.Errorf("writing metadata for %s: %w", item.URL, err)
	}

	source, err := e.store.ItemForFile(ctx, sub.SourceURL)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingItem) || errors.Is(err, domain.ErrNotFound) {
			e.log.Low("no drop-off item backs %s; property copy only", sub.SourceURL)
			return nil, nil
		}
		return nil, fmt.Errorf("finding drop-off item for %s: %w", sub.SourceURL, err)
	}
	warnings, err := e.copier.Copy(ctx, source, item)
	if err != nil {
		return warnings, fmt.Errorf("copying metadata from %s: %w", source.URL, err)
	}
	return warnings, nil
}

// applyPropertyBag folds the pre-drop-off metadata snapshot into the
// routed item. Values set from the submission's own properties win;
// nodes no destination field claims are only reported.
func (e *Engine) applyPropertyBag(bag string, fields []domain.Field, item *domain.Item) {
	nodes, err := e.reader.Read(bag)
	if err != nil {
		e.log.Medium("unreadable routing property bag: %v", err)
		return
	}
	matched, unmatched := e.reader.Match(nodes, fields)
	for internal, value := range matched {
		if _, set := item.Values[internal]; !set {
			item.Values[internal] = stripRefPrefix(value)
		}
	}
	for _, c := range e.reader.Candidates(unmatched) {
		e.log.Low("property %q has no destination field; suggested title %q", c.InternalName, c.Title)
	}
}

// stripRefPrefix removes a leading reference id from a property value.
// A separator at index zero is part of the value and kept.
func stripRefPrefix(value string) string {
	if i := strings.Index(value, domain.RefSeparator); i > 0 {
		return domain.SubstringAfter(value, domain.RefSeparator)
	}
	return value
}

// splitFolderPath breaks a rule's target folder into its segments.
func splitFolderPath(folder string) []string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return nil
	}
	return strings.Split(folder, "/")
}
