package state

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	dbutil "github.com/llehouerou/glimpse/internal/db"
)

// Selection is the last path shown by the viewer.
type Selection struct {
	Path      string
	Directory string
	SavedAt   time.Time
}

// HistoryEntry records how often a path was shown.
type HistoryEntry struct {
	Path         string
	ViewCount    int
	LastViewedAt time.Time
}

func getSelection(db *sql.DB) (*Selection, error) {
	row := db.QueryRow(`SELECT path, directory, saved_at FROM last_selection WHERE id = 1`)

	var sel Selection
	var directory sql.NullString
	var savedAt int64
	err := row.Scan(&sel.Path, &directory, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	sel.Directory = dbutil.NullStringValue(directory)
	sel.SavedAt = time.Unix(savedAt, 0)
	return &sel, nil
}

func saveSelection(ctx context.Context, db *sql.DB, path string, at time.Time) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO last_selection (id, path, directory, saved_at)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				path = excluded.path,
				directory = excluded.directory,
				saved_at = excluded.saved_at
		`, path, filepath.Dir(path), at.Unix())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO view_history (path, view_count, last_viewed_at)
			VALUES (?, 1, ?)
			ON CONFLICT(path) DO UPDATE SET
				view_count = view_count + 1,
				last_viewed_at = excluded.last_viewed_at
		`, path, at.Unix())
		return err
	})
}

func getHistory(db *sql.DB, limit int) ([]HistoryEntry, error) {
	rows, err := db.Query(`
		SELECT path, view_count, last_viewed_at
		FROM view_history
		ORDER BY last_viewed_at DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var at int64
		if err := rows.Scan(&e.Path, &e.ViewCount, &at); err != nil {
			return nil, err
		}
		e.LastViewedAt = time.Unix(at, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
