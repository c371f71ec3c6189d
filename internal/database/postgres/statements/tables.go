package statements

const (
	CreateAuditEventsTable = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id bigserial PRIMARY KEY,
			event_type text NOT NULL,
			event_data text NOT NULL,
			event_time timestamp NOT NULL
		);
	`

	CreateAuditEventsIndex = `
		CREATE INDEX IF NOT EXISTS audit_events_type_idx ON audit_events (event_type);
	`
)
