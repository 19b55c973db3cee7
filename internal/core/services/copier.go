package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/core/ports/driving"
	"github.com/clinidocs/docrouter/internal/logger"
)

// DocumentSourceTitle is the display title of the field recording where
// a routed document came from.
const DocumentSourceTitle = "Document Source"

// CopyOptions tunes a CopyEngine.
type CopyOptions struct {
	// OmitTitles lists destination field titles excluded from the copy.
	OmitTitles []string
	// Versioned makes the persist step go through checkout and checkin
	// so the copy lands as a committed version. Off, the copy is written
	// as a system update with no version bump.
	Versioned bool
}

// CopyEngine transfers metadata between two items whose schemas differ,
// joining fields by display title. Per-field transform failures are
// collected as warnings and never abort the copy.
type CopyEngine struct {
	store       driven.ContentStore
	transformer *Transformer
	omit        map[string]struct{}
	versioned   bool
	log         logger.Logger
}

var _ driving.Copier = (*CopyEngine)(nil)

// NewCopyEngine creates a CopyEngine with the given options.
func NewCopyEngine(store driven.ContentStore, transformer *Transformer, opts CopyOptions, log logger.Logger) *CopyEngine {
	omit := make(map[string]struct{}, len(opts.OmitTitles))
	for _, title := range opts.OmitTitles {
		omit[title] = struct{}{}
	}
	return &CopyEngine{
		store:       store,
		transformer: transformer,
		omit:        omit,
		versioned:   opts.Versioned,
		log:         log,
	}
}

// Copy moves every eligible field value from source to dest and
// persists dest. Fields join by display title; titles missing on the
// source side are skipped. The returned warnings list one entry per
// field whose transform failed.
func (e *CopyEngine) Copy(ctx context.Context, source, dest *domain.Item) ([]domain.FieldWarning, error) {
	if source == nil || dest == nil {
		return nil, fmt.Errorf("%w: copy requires both items", domain.ErrInvalidInput)
	}
	srcFields, err := e.store.Fields(ctx, source.Library)
	if err != nil {
		return nil, fmt.Errorf("reading source schema %q: %w", source.Library, err)
	}
	dstFields, err := e.store.Fields(ctx, dest.Library)
	if err != nil {
		return nil, fmt.Errorf("reading destination schema %q: %w", dest.Library, err)
	}
	sameSite, err := e.sameSite(ctx, source.Library, dest.Library)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]domain.Field, len(srcFields))
	for _, f := range srcFields {
		byTitle[domain.NormalizeFieldTitle(f.Title)] = f
	}

	if dest.Values == nil {
		dest.Values = make(map[string]string)
	}
	var warnings []domain.FieldWarning
	for _, dst := range dstFields {
		if _, omitted := e.omit[dst.Title]; omitted {
			continue
		}
		if !domain.IsCopyTarget(dst) {
			continue
		}
		if dst.Title == DocumentSourceTitle {
			dest.Values[dst.InternalName] = documentSourceValue(dst, source)
			continue
		}
		src, ok := byTitle[domain.NormalizeFieldTitle(dst.Title)]
		if !ok {
			continue
		}
		value := source.Value(src.InternalName)
		if value == "" {
			continue
		}
		out, apply, err := e.transformer.Transform(ctx, src, dst, value, sameSite)
		if err != nil {
			warning := domain.FieldWarning{FieldTitle: dst.Title, Message: err.Error()}
			warnings = append(warnings, warning)
			e.log.Medium("%s", warning)
			continue
		}
		if !apply {
			continue
		}
		dest.Values[dst.InternalName] = out
	}

	if err := e.persist(ctx, dest); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// sameSite reports whether two libraries live under the same site, in
// which case serialized principal references stay valid across the copy.
func (e *CopyEngine) sameSite(ctx context.Context, sourceLibrary, destLibrary string) (bool, error) {
	src, err := e.store.LibraryByTitle(ctx, sourceLibrary)
	if err != nil {
		return false, fmt.Errorf("resolving library %q: %w", sourceLibrary, err)
	}
	dst, err := e.store.LibraryByTitle(ctx, destLibrary)
	if err != nil {
		return false, fmt.Errorf("resolving library %q: %w", destLibrary, err)
	}
	return src.WebURL == dst.WebURL, nil
}

// persist writes dest back through the configured update mode. In
// versioned mode a file that is not yet checked out is checked out and
// back in around the update.
func (e *CopyEngine) persist(ctx context.Context, dest *domain.Item) error {
	if !e.versioned {
		if err := e.store.SystemUpdate(ctx, dest); err != nil {
			return fmt.Errorf("system update of %s: %w", dest.URL, err)
		}
		return nil
	}
	if dest.CheckedOut {
		if err := e.store.Update(ctx, dest); err != nil {
			return fmt.Errorf("updating %s: %w", dest.URL, err)
		}
		return nil
	}
	if err := e.store.Checkout(ctx, dest.URL); err != nil {
		return fmt.Errorf("checking out %s: %w", dest.URL, err)
	}
	if err := e.store.Update(ctx, dest); err != nil {
		return fmt.Errorf("updating %s: %w", dest.URL, err)
	}
	if err := e.store.Checkin(ctx, dest.URL, "Metadata copy"); err != nil {
		return fmt.Errorf("checking in %s: %w", dest.URL, err)
	}
	return nil
}

// documentSourceValue renders the source location for the Document
// Source field: a hyperlink when the field is URL-typed, a plain
// encoded string otherwise.
func documentSourceValue(dst domain.Field, source *domain.Item) string {
	encoded := encodeURL(source.URL)
	if dst.Kind == domain.KindURL {
		return domain.URLValue{URL: encoded, Description: "Link to: " + source.Name}.String()
	}
	return encoded
}

// encodeURL normalizes percent-encoding on a location, leaving values
// that do not parse untouched.
func encodeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
