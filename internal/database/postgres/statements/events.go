package statements

const (
	AddEvent = `
		INSERT INTO audit_events (event_type, event_data, event_time)
		VALUES ($1, $2, $3) RETURNING id;
	`

	GetEvents = `
		SELECT id, event_type, event_data, event_time FROM audit_events
		WHERE event_type = $1
		ORDER BY id DESC
		LIMIT $2;
	`
)
