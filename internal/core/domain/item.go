package domain

// Item is one stored list item: a file plus its metadata values.
type Item struct {
	// ID is the row id within the library.
	ID int
	// Name is the file name.
	Name string
	// URL is the server-relative location of the file.
	URL string
	// Library is the title of the containing library.
	Library string
	// Folder is the library-relative folder path, empty at the root.
	Folder string
	// ContentTypeName is the schema assigned to the item.
	ContentTypeName string
	// Values maps field internal names to serialized values.
	Values map[string]string
	// CheckedOut reports whether the file is currently checked out.
	CheckedOut bool
	// Version counts committed updates.
	Version int
}

// Value returns the serialized value for a field internal name.
func (i *Item) Value(internalName string) string {
	if i.Values == nil {
		return ""
	}
	return i.Values[internalName]
}

// Submission is the intake event delivered by the hosting platform for
// one uploaded document.
type Submission struct {
	// ContentTypeName is the document's schema.
	ContentTypeName string
	// UserName is the login of the submitting user.
	UserName string
	// Content is the binary document stream.
	Content []byte
	// SourceURL is the document's current location in the drop-off area.
	SourceURL string
	// Properties is the ordered (name, value) metadata delivered with the
	// file, including vendor-internal keys.
	Properties []Property
	// FinalFolder is the platform's pre-resolved candidate destination.
	FinalFolder string
}

// Property is one (name, value) metadata pair on a submission.
type Property struct {
	Name  string
	Value string
}

// PropertyMap folds the submission properties into a map, keeping the
// first value for duplicate names.
func (s Submission) PropertyMap() map[string]string {
	m := make(map[string]string, len(s.Properties))
	for _, p := range s.Properties {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p.Value
		}
	}
	return m
}
