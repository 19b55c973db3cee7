package domain

// Term is one managed taxonomy term resolved from a term set.
type Term struct {
	// GUID identifies the term across sites.
	GUID string
	// Label is the default display label.
	Label string
	// WssID is the term's row id in the consuming site's hidden term
	// list, or UnboundTermID when the site has no binding yet.
	WssID int
}

// StorageValue serializes the term in the `{wssID};#{label}|{guid}` form
// taxonomy fields persist.
func (t Term) StorageValue() string {
	return FormatTermValue(t.WssID, t.Label, t.GUID)
}
