package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory content repository: content types,
// libraries with folders, and items with file content.
type ContentStore struct {
	mu           sync.RWMutex
	contentTypes map[string]domain.ContentType
	libOrder     []string
	libraries    map[string]*domain.Library
	fields       map[string][]domain.Field
	items        map[string]map[int]*domain.Item
	itemsByURL   map[string]*domain.Item
	folders      map[string]struct{}
	contents     map[string][]byte
	nextID       int
}

// NewContentStore creates an empty in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		contentTypes: make(map[string]domain.ContentType),
		libraries:    make(map[string]*domain.Library),
		fields:       make(map[string][]domain.Field),
		items:        make(map[string]map[int]*domain.Item),
		itemsByURL:   make(map[string]*domain.Item),
		folders:      make(map[string]struct{}),
		contents:     make(map[string][]byte),
	}
}

// AddContentType registers a content type schema.
func (s *ContentStore) AddContentType(ct domain.ContentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentTypes[ct.Name] = ct
}

// AddLibrary registers a library. Listing order follows registration
// order.
func (s *ContentStore) AddLibrary(lib domain.Library) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.libraries[lib.Title]; !exists {
		s.libOrder = append(s.libOrder, lib.Title)
	}
	s.libraries[lib.Title] = &lib
	s.folders[lib.URL()] = struct{}{}
}

// SetFields assigns a library's field schema.
func (s *ContentStore) SetFields(libraryTitle string, fields []domain.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[libraryTitle] = fields
}

// AddItem stores an item, assigning its id and URL when unset, and
// returns a copy.
func (s *ContentStore) AddItem(libraryTitle string, item domain.Item) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	lib := s.libraries[libraryTitle]
	if item.ID == 0 {
		s.nextID++
		item.ID = s.nextID
	}
	item.Library = libraryTitle
	if item.URL == "" && lib != nil {
		base := lib.URL()
		if item.Folder != "" {
			base += "/" + item.Folder
		}
		item.URL = base + "/" + item.Name
	}
	if item.Values == nil {
		item.Values = make(map[string]string)
	}
	stored := item
	if s.items[libraryTitle] == nil {
		s.items[libraryTitle] = make(map[int]*domain.Item)
	}
	s.items[libraryTitle][stored.ID] = &stored
	s.itemsByURL[stored.URL] = &stored
	return copyItem(&stored)
}

// ContentTypeByName retrieves a content type schema by display name.
func (s *ContentStore) ContentTypeByName(_ context.Context, name string) (*domain.ContentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ct, ok := s.contentTypes[name]
	if !ok {
		return nil, fmt.Errorf("content type %q: %w", name, domain.ErrNotFound)
	}
	return &ct, nil
}

// Libraries returns every library in registration order.
func (s *ContentStore) Libraries(_ context.Context) ([]domain.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Library, 0, len(s.libOrder))
	for _, title := range s.libOrder {
		out = append(out, *s.libraries[title])
	}
	return out, nil
}

// LibraryByTitle retrieves one library by title.
func (s *ContentStore) LibraryByTitle(_ context.Context, title string) (*domain.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lib, ok := s.libraries[title]
	if !ok {
		return nil, fmt.Errorf("library %q: %w", title, domain.ErrNotFound)
	}
	out := *lib
	return &out, nil
}

// AttachContentType adds a content type to a library's accepted set.
func (s *ContentStore) AttachContentType(_ context.Context, libraryTitle, contentTypeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lib, ok := s.libraries[libraryTitle]
	if !ok {
		return fmt.Errorf("library %q: %w", libraryTitle, domain.ErrNotFound)
	}
	if lib.HasContentType(contentTypeName) {
		return nil
	}
	lib.ContentTypeNames = append(lib.ContentTypeNames, contentTypeName)
	return nil
}

// EnsureFolder creates each missing folder down the segment chain and
// returns the deepest folder's URL.
func (s *ContentStore) EnsureFolder(_ context.Context, libraryTitle string, segments []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lib, ok := s.libraries[libraryTitle]
	if !ok {
		return "", fmt.Errorf("library %q: %w", libraryTitle, domain.ErrNotFound)
	}
	url := lib.URL()
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return "", fmt.Errorf("%w: empty folder name under %s", domain.ErrInvalidInput, url)
		}
		url += "/" + seg
		s.folders[url] = struct{}{}
	}
	return url, nil
}

// Fields returns a copy of the library's field schema.
func (s *ContentStore) Fields(_ context.Context, libraryTitle string) ([]domain.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.libraries[libraryTitle]; !ok {
		return nil, fmt.Errorf("library %q: %w", libraryTitle, domain.ErrNotFound)
	}
	fields := s.fields[libraryTitle]
	out := make([]domain.Field, len(fields))
	copy(out, fields)
	return out, nil
}

// ItemForFile retrieves the item backing a file URL.
func (s *ContentStore) ItemForFile(_ context.Context, fileURL string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.itemsByURL[fileURL]
	if !ok {
		return nil, fmt.Errorf("%s: %w", fileURL, domain.ErrNoMatchingItem)
	}
	return copyItemPtr(item), nil
}

// ItemByID retrieves one item by row id within a list.
func (s *ContentStore) ItemByID(_ context.Context, listTitle string, id int) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[listTitle][id]
	if !ok {
		return nil, fmt.Errorf("item %d in %q: %w", id, listTitle, domain.ErrNotFound)
	}
	return copyItemPtr(item), nil
}

// QueryByColumn scans a list for items whose column equals the value,
// in row id order.
func (s *ContentStore) QueryByColumn(_ context.Context, listTitle, column, value string) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Item
	for _, item := range s.items[listTitle] {
		if item.Value(column) == value {
			out = append(out, copyItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateFile stores a file in a folder and returns its item. An
// existing file at the same URL is overwritten in place.
func (s *ContentStore) CreateFile(_ context.Context, folderURL, name string, content []byte) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.folders[folderURL]; !ok {
		return nil, fmt.Errorf("folder %s: %w", folderURL, domain.ErrNotFound)
	}
	libraryTitle, folder, err := s.locate(folderURL)
	if err != nil {
		return nil, err
	}
	url := folderURL + "/" + name
	s.contents[url] = append([]byte(nil), content...)
	if existing, ok := s.itemsByURL[url]; ok {
		return copyItemPtr(existing), nil
	}
	s.nextID++
	item := &domain.Item{
		ID:      s.nextID,
		Name:    name,
		URL:     url,
		Library: libraryTitle,
		Folder:  folder,
		Values:  make(map[string]string),
	}
	if s.items[libraryTitle] == nil {
		s.items[libraryTitle] = make(map[int]*domain.Item)
	}
	s.items[libraryTitle][item.ID] = item
	s.itemsByURL[url] = item
	return copyItemPtr(item), nil
}

// FileExists reports whether a folder already holds the named file.
func (s *ContentStore) FileExists(_ context.Context, folderURL, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.contents[folderURL+"/"+name]
	return ok, nil
}

// Checkout takes the file's edit lock.
func (s *ContentStore) Checkout(_ context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.itemsByURL[fileURL]
	if !ok {
		return fmt.Errorf("%s: %w", fileURL, domain.ErrNoMatchingItem)
	}
	if item.CheckedOut {
		return fmt.Errorf("%s is already checked out", fileURL)
	}
	item.CheckedOut = true
	return nil
}

// Checkin commits the pending edit and releases the lock.
func (s *ContentStore) Checkin(_ context.Context, fileURL, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.itemsByURL[fileURL]
	if !ok {
		return fmt.Errorf("%s: %w", fileURL, domain.ErrNoMatchingItem)
	}
	if !item.CheckedOut {
		return fmt.Errorf("%s is not checked out", fileURL)
	}
	item.CheckedOut = false
	return nil
}

// Update persists the item's values and bumps its version.
func (s *ContentStore) Update(_ context.Context, item *domain.Item) error {
	return s.write(item, true)
}

// SystemUpdate persists the item's values without a version bump.
func (s *ContentStore) SystemUpdate(_ context.Context, item *domain.Item) error {
	return s.write(item, false)
}

func (s *ContentStore) write(item *domain.Item, bump bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.itemsByURL[item.URL]
	if !ok {
		return fmt.Errorf("%s: %w", item.URL, domain.ErrNoMatchingItem)
	}
	stored.ContentTypeName = item.ContentTypeName
	stored.Values = make(map[string]string, len(item.Values))
	for k, v := range item.Values {
		stored.Values[k] = v
	}
	if bump {
		stored.Version++
	}
	item.Version = stored.Version
	return nil
}

// locate maps a folder URL back to its library and relative folder.
func (s *ContentStore) locate(folderURL string) (string, string, error) {
	for _, title := range s.libOrder {
		base := s.libraries[title].URL()
		if folderURL == base {
			return title, "", nil
		}
		if strings.HasPrefix(folderURL, base+"/") {
			return title, strings.TrimPrefix(folderURL, base+"/"), nil
		}
	}
	return "", "", fmt.Errorf("folder %s belongs to no library: %w", folderURL, domain.ErrNotFound)
}

func copyItem(item *domain.Item) domain.Item {
	out := *item
	out.Values = make(map[string]string, len(item.Values))
	for k, v := range item.Values {
		out.Values[k] = v
	}
	return out
}

func copyItemPtr(item *domain.Item) *domain.Item {
	out := copyItem(item)
	return &out
}
