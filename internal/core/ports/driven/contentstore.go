package driven

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// ContentStore provides the routing core's view of the content
// repository: content type schemas, libraries and their folders, and
// the items stored in them.
//
// Lookups return domain.ErrNotFound when the named entity does not
// exist. Files with no backing item return domain.ErrNoMatchingItem.
type ContentStore interface {
	// ContentTypeByName retrieves a content type schema by display name.
	ContentTypeByName(ctx context.Context, name string) (*domain.ContentType, error)

	// Libraries returns every library in the site, including the
	// drop-off library and non-document lists.
	Libraries(ctx context.Context) ([]domain.Library, error)

	// LibraryByTitle retrieves one library by title.
	LibraryByTitle(ctx context.Context, title string) (*domain.Library, error)

	// AttachContentType adds a content type to a library's accepted set.
	// Attaching an already-attached type is a no-op.
	AttachContentType(ctx context.Context, libraryTitle, contentTypeName string) error

	// EnsureFolder walks the segment chain under the library root,
	// creating each missing folder, and returns the deepest folder's URL.
	// An empty chain returns the library's own URL.
	EnsureFolder(ctx context.Context, libraryTitle string, segments []string) (string, error)

	// Fields returns the field schema of a library.
	Fields(ctx context.Context, libraryTitle string) ([]domain.Field, error)

	// ItemForFile retrieves the item backing a file URL.
	ItemForFile(ctx context.Context, fileURL string) (*domain.Item, error)

	// ItemByID retrieves one item by row id within a list.
	ItemByID(ctx context.Context, listTitle string, id int) (*domain.Item, error)

	// QueryByColumn returns the items of a list whose column equals the
	// given serialized value exactly. The scan recurses into folders.
	QueryByColumn(ctx context.Context, listTitle, column, value string) ([]domain.Item, error)

	// CreateFile stores a new file in a folder and returns its item.
	// An existing file at the same name is overwritten.
	CreateFile(ctx context.Context, folderURL, name string, content []byte) (*domain.Item, error)

	// FileExists reports whether a folder already holds the named file.
	FileExists(ctx context.Context, folderURL, name string) (bool, error)

	// Checkout takes the file's edit lock.
	Checkout(ctx context.Context, fileURL string) error

	// Checkin commits the pending edit and releases the lock.
	Checkin(ctx context.Context, fileURL, comment string) error

	// Update persists the item's values and bumps its version.
	Update(ctx context.Context, item *domain.Item) error

	// SystemUpdate persists the item's values without a version bump.
	SystemUpdate(ctx context.Context, item *domain.Item) error
}
