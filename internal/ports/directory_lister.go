package ports

import (
	"context"
)

// DirectoryLister enumerates the documents of a corpus directory
type DirectoryLister interface {
	// List returns the regular files directly inside dir, in a stable order
	List(ctx context.Context, dir string) ([]string, error)
}
