package domain

// Principal is a resolved user or group in the directory.
type Principal struct {
	// ID is the site-local principal id.
	ID int
	// Name is the display name written back to user fields.
	Name string
	// IsGroup distinguishes groups from individual users.
	IsGroup bool
}

// Ref returns the principal as a serializable field reference.
func (p Principal) Ref() LookupValue {
	return LookupValue{ID: p.ID, Label: p.Name}
}
