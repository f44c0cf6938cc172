package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSelection(path string)
	LastSelection() (*Selection, error)
	History(limit int) ([]HistoryEntry, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
