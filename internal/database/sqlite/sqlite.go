// Package sqlite is the embedded audit log backend, used for single-host
// deployments and in tests.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/database/sqlite/statements"
	"github.com/devusSs/court-kraken/internal/types"
	_ "modernc.org/sqlite"
)

type store struct {
	db *sql.DB
}

// Opens (and creates if needed) the SQLite database at path.
//
// ":memory:" opens a private in-memory database.
func New(path string) (database.Service, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer connection for SQLite, also keeps :memory: on one database.
	db.SetMaxOpenConns(1)

	return &store{db}, nil
}

func (s *store) Ping() error {
	return s.db.Ping()
}

func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) Migrate() error {
	if _, err := s.db.Exec(statements.CreateAuditEventsTable); err != nil {
		return err
	}

	_, err := s.db.Exec(statements.CreateAuditEventsIndex)

	return err
}

func (s *store) AddAuditEvent(event database.AuditEvent) (database.AuditEvent, error) {
	res, err := s.db.Exec(statements.AddEvent, string(event.Type), event.Data, event.Timestamp.UnixMilli())
	if err != nil {
		return event, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return event, err
	}
	event.ID = int(id)

	return event, nil
}

func (s *store) GetAuditEvents(action types.EventType, limit int) ([]database.AuditEvent, error) {
	rows, err := s.db.Query(statements.GetEvents, string(action), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []database.AuditEvent{}

	for rows.Next() {
		var (
			e      database.AuditEvent
			millis int64
		)

		if err := rows.Scan(&e.ID, &e.Type, &e.Data, &millis); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(millis)

		events = append(events, e)
	}

	return events, rows.Err()
}
