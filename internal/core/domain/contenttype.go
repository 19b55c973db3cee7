package domain

// ContentType is a named item schema with single-parent inheritance.
// The root of a well-formed chain is a node whose parent carries the
// node's own name.
type ContentType struct {
	// ID is the store's hierarchical content type identifier.
	ID string
	// Name is the display name, the key routing rules match on.
	Name string
	// ParentName names the parent schema. Equal to Name at the root.
	ParentName string
}
