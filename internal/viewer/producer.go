package viewer

import (
	"context"

	"github.com/llehouerou/glimpse/internal/bridge"
)

// Producer discovers paths in the background, posting bridge.NewPath
// messages until it returns.
type Producer interface {
	Name() string
	Run(ctx context.Context, post func(bridge.Message)) error
}

// SelectionStore persists the last selected path.
type SelectionStore interface {
	SaveSelection(path string)
}
