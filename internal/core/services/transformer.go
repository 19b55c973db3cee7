package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/logger"
)

// dateTimeLayouts are tried in order when reformatting a date value.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// dateTimeStorageLayout is the invariant form written to date fields.
const dateTimeStorageLayout = "01/02/2006 15:04:05"

// Transformer converts one field's serialized value into the form the
// destination field stores. Each transform category maps to one method;
// Transform dispatches on the classified category.
type Transformer struct {
	terms      driven.TermStore
	lookups    *LookupResolver
	principals *PrincipalResolver
	log        logger.Logger
}

// NewTransformer creates a Transformer with its collaborating
// resolvers.
func NewTransformer(terms driven.TermStore, lookups *LookupResolver, principals *PrincipalResolver, log logger.Logger) *Transformer {
	return &Transformer{terms: terms, lookups: lookups, principals: principals, log: log}
}

// Transform computes the destination value for one field copy.
// The second return is false when the field should be skipped without a
// write. A non-nil error is recoverable: the caller records it as a
// warning for the field and moves on.
func (t *Transformer) Transform(ctx context.Context, src, dst domain.Field, value string, sameSite bool) (string, bool, error) {
	switch domain.Classify(src, dst) {
	case domain.TransformTaxonomyTerm:
		return t.taxonomyTerm(ctx, dst, value)
	case domain.TransformLookupOrInvalid:
		return t.lookupOrInvalid(ctx, dst, value)
	case domain.TransformSameKindUser:
		return t.sameKindUser(ctx, dst, value, sameSite)
	case domain.TransformUser:
		return t.user(ctx, dst, value)
	case domain.TransformNumber:
		return number(value)
	case domain.TransformDateTime:
		return dateTime(value)
	case domain.TransformTextOrChoice:
		return textOrChoice(src, value)
	default:
		return value, true, nil
	}
}

// textOrChoice flattens any reference encoding to plain display text.
func textOrChoice(src domain.Field, value string) (string, bool, error) {
	switch {
	case src.IsTaxonomy():
		return domain.SubstringBefore(value, domain.TermLabelDelimiter), true, nil
	case src.IsLookup() || src.Kind == domain.KindInvalid:
		if src.Kind == domain.KindInvalid {
			return domain.SubstringAfter(value, domain.RefSeparator), true, nil
		}
		values := domain.ParseLookupValues(value)
		if src.Multi {
			return domain.JoinLabels(values), true, nil
		}
		if len(values) == 0 {
			return "", true, nil
		}
		return values[0].Label, true, nil
	case src.IsUser():
		return domain.JoinLabels(domain.ParseLookupValues(value)), true, nil
	default:
		return domain.SubstringAfter(value, domain.RefSeparator), true, nil
	}
}

// number strips the reference prefix and keeps only values that parse
// as integers; anything else is silently skipped.
func number(value string) (string, bool, error) {
	s := strings.TrimSpace(domain.SubstringAfter(value, domain.RefSeparator))
	if _, err := strconv.Atoi(s); err != nil {
		return "", false, nil
	}
	return s, true, nil
}

// dateTime reformats a non-empty value into the invariant storage form.
// Empty values are skipped without a write.
func dateTime(value string) (string, bool, error) {
	if strings.TrimSpace(value) == "" {
		return "", false, nil
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(dateTimeStorageLayout), true, nil
		}
	}
	return "", false, fmt.Errorf("unparseable date value %q", value)
}

// sameKindUser copies principal references between two user fields.
// Inside one site the serialized references stay valid and are copied
// directly; across sites each label is re-resolved and unresolvable
// entries are skipped with a log line.
func (t *Transformer) sameKindUser(ctx context.Context, dst domain.Field, value string, sameSite bool) (string, bool, error) {
	values := domain.ParseLookupValues(value)
	if len(values) == 0 {
		return "", false, nil
	}
	if sameSite {
		if !dst.Multi {
			return values[0].String(), true, nil
		}
		return domain.FormatLookupValues(values), true, nil
	}
	var resolved []domain.LookupValue
	for _, v := range values {
		p, err := t.principals.Resolve(ctx, v.Label)
		if err != nil {
			t.log.Medium("skipping principal %q for field %q: %v", v.Label, dst.Title, err)
			continue
		}
		resolved = append(resolved, p.Ref())
	}
	return formatPrincipals(dst, resolved)
}

// user re-resolves a `;`-separated list of display names into principal
// references. Unresolvable names are skipped with a log line.
func (t *Transformer) user(ctx context.Context, dst domain.Field, value string) (string, bool, error) {
	var resolved []domain.LookupValue
	for _, name := range strings.Split(value, ";") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := t.principals.Resolve(ctx, name)
		if err != nil {
			t.log.Medium("skipping principal %q for field %q: %v", name, dst.Title, err)
			continue
		}
		resolved = append(resolved, p.Ref())
	}
	return formatPrincipals(dst, resolved)
}

func formatPrincipals(dst domain.Field, resolved []domain.LookupValue) (string, bool, error) {
	if len(resolved) == 0 {
		return "", false, nil
	}
	if !dst.Multi {
		return resolved[0].String(), true, nil
	}
	return domain.FormatLookupValues(resolved), true, nil
}

// lookupOrInvalid resolves labels against the destination's bound list.
// A multi-valued destination resolves every label; a single-valued one
// keeps the first, and an empty first value is written as empty.
func (t *Transformer) lookupOrInvalid(ctx context.Context, dst domain.Field, value string) (string, bool, error) {
	values := domain.ParseLookupValues(value)
	if dst.Multi {
		var resolved []domain.LookupValue
		for _, v := range values {
			lv, err := t.lookups.Resolve(ctx, dst, v.Label)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					t.log.Medium("skipping value %q for field %q: %v", v.Label, dst.Title, err)
					continue
				}
				return "", false, err
			}
			resolved = append(resolved, *lv)
		}
		if len(resolved) == 0 {
			return "", false, nil
		}
		return domain.FormatLookupValues(resolved), true, nil
	}
	if len(values) == 0 || values[0].Label == "" {
		return "", true, nil
	}
	lv, err := t.lookups.Resolve(ctx, dst, values[0].Label)
	if err != nil {
		return "", false, err
	}
	return lv.String(), true, nil
}

// taxonomyTerm resolves the value's label against the destination's
// term set. A label without a matching term is a silent no-op.
func (t *Transformer) taxonomyTerm(ctx context.Context, dst domain.Field, value string) (string, bool, error) {
	label := strings.TrimSpace(domain.SubstringBefore(value, domain.TermLabelDelimiter))
	if strings.Contains(label, domain.RefSeparator) {
		label = domain.SubstringAfter(label, domain.RefSeparator)
	}
	if label == "" {
		return "", false, nil
	}
	term, err := t.terms.FindTerm(ctx, dst.TermSetID, label)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("searching term set for %q: %w", label, err)
	}
	return term.StorageValue(), true, nil
}
