package driving

import (
	"context"

	"github.com/clinidocs/docrouter/internal/core/domain"
)

// Copier transfers metadata between two items whose schemas differ.
type Copier interface {
	// Copy moves every eligible field value from source to dest, joining
	// fields by display title, and persists dest. Individual field
	// failures are returned as warnings; the copy itself never aborts on
	// them.
	Copy(ctx context.Context, source, dest *domain.Item) ([]domain.FieldWarning, error)
}
