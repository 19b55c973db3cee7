package domain

// Library is a destination document or picture library.
type Library struct {
	// Title identifies the library within its site.
	Title string
	// WebURL is the parent site URL.
	WebURL string
	// IsDocumentLibrary marks document and picture libraries; other list
	// kinds never receive routed documents.
	IsDocumentLibrary bool
	// ContentTypesEnabled libraries accept multi-content-type items.
	ContentTypesEnabled bool
	// DropOff marks the intake library; it is never a destination.
	DropOff bool
	// ContentTypeNames lists the schemas attached to the library.
	ContentTypeNames []string
}

// URL returns the library's own location.
func (l Library) URL() string {
	return l.WebURL + "/" + l.Title
}

// HasContentType reports whether the named schema is attached.
func (l Library) HasContentType(name string) bool {
	for _, n := range l.ContentTypeNames {
		if n == name {
			return true
		}
	}
	return false
}
