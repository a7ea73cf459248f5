package employee

import "context"

// DirectoryRepository is the read-only view of the employee directory.
type DirectoryRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}
