package domain

import "strings"

// FieldKind is the declared storage kind of a metadata field, mirroring
// the content store's type names.
type FieldKind string

// Field kinds understood by the engine. Unrecognized declared types map
// to KindLookup because their serialized format is the same `id;#label`
// shape.
const (
	KindText           FieldKind = "Text"
	KindNote           FieldKind = "Note"
	KindChoice         FieldKind = "Choice"
	KindMultiChoice    FieldKind = "MultiChoice"
	KindNumber         FieldKind = "Number"
	KindInteger        FieldKind = "Integer"
	KindCurrency       FieldKind = "Currency"
	KindDateTime       FieldKind = "DateTime"
	KindBoolean        FieldKind = "Boolean"
	KindLookup         FieldKind = "Lookup"
	KindUser           FieldKind = "User"
	KindURL            FieldKind = "URL"
	KindTaxonomy       FieldKind = "TaxonomyFieldType"
	KindCounter        FieldKind = "Counter"
	KindGuid           FieldKind = "Guid"
	KindCalculated     FieldKind = "Calculated"
	KindAttachments    FieldKind = "Attachments"
	KindFile           FieldKind = "File"
	KindComputed       FieldKind = "Computed"
	KindContentTypeID  FieldKind = "ContentTypeId"
	KindModStat        FieldKind = "ModStat"
	KindWorkflowStatus FieldKind = "WorkflowStatus"
	KindInvalid        FieldKind = "Invalid"
)

// knownKinds lists every declared type name the store can hand us.
var knownKinds = map[string]FieldKind{
	"AllDayEvent":       KindInvalid,
	"Attachments":       KindAttachments,
	"Boolean":           KindBoolean,
	"Calculated":        KindCalculated,
	"Choice":            KindChoice,
	"Computed":          KindComputed,
	"ContentTypeId":     KindContentTypeID,
	"Counter":           KindCounter,
	"Currency":          KindCurrency,
	"DateTime":          KindDateTime,
	"Error":             KindInvalid,
	"File":              KindFile,
	"Guid":              KindGuid,
	"Integer":           KindInteger,
	"Invalid":           KindInvalid,
	"Lookup":            KindLookup,
	"ModStat":           KindModStat,
	"MultiChoice":       KindMultiChoice,
	"Note":              KindNote,
	"Number":            KindNumber,
	"Text":              KindText,
	"TaxonomyFieldType": KindTaxonomy,
	"URL":               KindURL,
	"User":              KindUser,
	"WorkflowStatus":    KindWorkflowStatus,
}

// KindFromName maps a declared type name to a FieldKind. Names the engine
// does not recognize resolve to KindLookup.
func KindFromName(name string) FieldKind {
	if k, ok := knownKinds[strings.TrimSpace(name)]; ok {
		return k
	}
	return KindLookup
}

// Field describes one metadata slot on an item schema.
type Field struct {
	// ID identifies the field within the store, unique per schema.
	ID string
	// InternalName is the store-internal name, unique within a schema.
	InternalName string
	// Title is the display title, used as the cross-schema join key.
	Title string
	// Kind is the declared storage kind.
	Kind FieldKind
	// ReadOnly fields are never copy targets.
	ReadOnly bool
	// Multi reports whether the field accepts multiple values.
	Multi bool
	// LookupList is the title of the bound list for lookup fields.
	LookupList string
	// LookupColumn is the bound display column for lookup fields.
	LookupColumn string
	// TermSetID is the bound term set for taxonomy fields.
	TermSetID string
}

// IsUser reports whether the field holds principal references.
func (f Field) IsUser() bool { return f.Kind == KindUser }

// IsLookup reports whether the field holds cross-list references.
func (f Field) IsLookup() bool { return f.Kind == KindLookup }

// IsTaxonomy reports whether the field is bound to a managed term set.
func (f Field) IsTaxonomy() bool { return f.Kind == KindTaxonomy }

// NormalizeFieldTitle collapses a display title to the property-bag name
// form: " ID" becomes " Id", the "(Converted Document)" suffix and all
// spaces are dropped.
func NormalizeFieldTitle(title string) string {
	title = strings.ReplaceAll(title, " ID", " Id")
	title = strings.ReplaceAll(title, "(Converted Document)", "")
	return strings.ReplaceAll(title, " ", "")
}
