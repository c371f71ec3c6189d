package statements

const (
	CreateAuditEventsTable = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			event_data TEXT NOT NULL,
			event_time INTEGER NOT NULL
		);
	`

	CreateAuditEventsIndex = `
		CREATE INDEX IF NOT EXISTS audit_events_type_idx ON audit_events (event_type);
	`

	// event_time is stored as unix milliseconds.
	AddEvent = `
		INSERT INTO audit_events (event_type, event_data, event_time) VALUES (?, ?, ?);
	`

	GetEvents = `
		SELECT id, event_type, event_data, event_time FROM audit_events
		WHERE event_type = ?
		ORDER BY id DESC
		LIMIT ?;
	`
)
