package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "glimpse"
	dbFileName   = "glimpse.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	log       logrus.FieldLogger
	now       func() time.Time
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   string
}

// Open opens the state database in the XDG data directory.
func Open(log logrus.FieldLogger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath, log)
}

// OpenPath opens the state database at dsn, ":memory:" included.
func OpenPath(dsn string, log logrus.FieldLogger) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Saves run on timer goroutines; one connection keeps :memory: shared.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, log: log, now: time.Now}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = ""
	m.saveMu.Unlock()

	// Flush pending state
	if pending != "" {
		m.save(pending)
	}

	return m.db.Close()
}

// LastSelection returns the last saved selection, nil on first run.
func (m *Manager) LastSelection() (*Selection, error) {
	return getSelection(m.db)
}

// History returns up to limit recently viewed paths, newest first.
func (m *Manager) History(limit int) ([]HistoryEntry, error) {
	return getHistory(m.db, limit)
}

// SaveSelection records path after a quiet period, so flicking through
// a directory writes only where the user stops.
func (m *Manager) SaveSelection(path string) {
	if path == "" {
		return
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = path

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = ""
		m.saveMu.Unlock()

		if pending != "" {
			m.save(pending)
		}
	})
}

func (m *Manager) save(path string) {
	if err := saveSelection(context.Background(), m.db, path, m.now()); err != nil {
		m.log.WithError(err).WithField("path", path).Warn("failed to save selection")
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
