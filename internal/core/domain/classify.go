package domain

// TransformCategory selects the transform applied when one field's value
// is copied across schemas. Categories are mutually exclusive; Classify
// tests them in priority order and the first match wins.
type TransformCategory int

const (
	// TransformTaxonomyTerm writes through the destination's term set.
	TransformTaxonomyTerm TransformCategory = iota
	// TransformLookupOrInvalid resolves labels against the bound lookup
	// list. Unrecognized declared kinds share this handling because their
	// serialized format is the same id;#label shape.
	TransformLookupOrInvalid
	// TransformSameKindUser copies principal references between two
	// principal fields, re-resolving only across site boundaries.
	TransformSameKindUser
	// TransformUser re-resolves display text into principal references.
	TransformUser
	// TransformNumber strips reference prefixes and requires integer parse.
	TransformNumber
	// TransformDateTime reformats non-empty values invariantly.
	TransformDateTime
	// TransformTextOrChoice flattens any reference encoding to plain text.
	TransformTextOrChoice
	// TransformDefault copies the raw value verbatim.
	TransformDefault
)

// String names the category for diagnostics.
func (c TransformCategory) String() string {
	switch c {
	case TransformTaxonomyTerm:
		return "TaxonomyTerm"
	case TransformLookupOrInvalid:
		return "LookupOrInvalid"
	case TransformSameKindUser:
		return "SameKindUser"
	case TransformUser:
		return "User"
	case TransformNumber:
		return "Number"
	case TransformDateTime:
		return "DateTime"
	case TransformTextOrChoice:
		return "TextOrChoice"
	default:
		return "Default"
	}
}

// Classify maps a (source, destination) field pair to its transform
// category.
func Classify(src, dst Field) TransformCategory {
	switch {
	case dst.IsTaxonomy():
		return TransformTaxonomyTerm
	case dst.IsLookup() || dst.Kind == KindInvalid:
		return TransformLookupOrInvalid
	case dst.IsUser() && src.IsUser():
		return TransformSameKindUser
	case dst.IsUser():
		return TransformUser
	case dst.Kind == KindNumber:
		return TransformNumber
	case dst.Kind == KindDateTime:
		return TransformDateTime
	case dst.Kind == KindText || dst.Kind == KindChoice:
		return TransformTextOrChoice
	default:
		return TransformDefault
	}
}

// protectedInternalNames are the store's bookkeeping fields that must
// never be copy targets.
var protectedInternalNames = map[string]struct{}{
	"DocIcon":          {},
	"ContentType":      {},
	"ContentTypeId":    {},
	"TemplateUrl":      {},
	"xd_ProgID":        {},
	"xd_Signature":     {},
	"MetaInfo":         {},
	"TaxCatchAll":      {},
	"TaxCatchAllLabel": {},
}

// protectedTitles are display titles that identify the item itself rather
// than copyable metadata.
var protectedTitles = map[string]struct{}{
	"Name":              {},
	"Signatures Status": {},
}

// IsProtectedInternalName reports whether an internal name belongs to
// the store's bookkeeping fields.
func IsProtectedInternalName(name string) bool {
	_, ok := protectedInternalNames[name]
	return ok
}

// IsCopyTarget reports whether a destination field may receive a copied
// value. Read-only fields, attachment/file/computed kinds, the item name,
// and the protected system fields are excluded.
func IsCopyTarget(dst Field) bool {
	if dst.ReadOnly {
		return false
	}
	switch dst.Kind {
	case KindAttachments, KindFile, KindComputed:
		return false
	}
	if _, ok := protectedTitles[dst.Title]; ok {
		return false
	}
	if _, ok := protectedInternalNames[dst.InternalName]; ok {
		return false
	}
	return true
}
