package ports

import (
	"context"
)

// Driver sequences training and scanning for one run of the filter
type Driver interface {
	// Run trains the filter on the spam and ham corpora, then scans the
	// unfiltered documents
	Run(ctx context.Context) error
}
