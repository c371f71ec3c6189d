package postgres

import (
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/database/postgres/statements"
	"github.com/devusSs/court-kraken/internal/types"
)

func (p *psql) AddAuditEvent(event database.AuditEvent) (database.AuditEvent, error) {
	row := p.db.QueryRow(statements.AddEvent, event.Type, event.Data, event.Timestamp)

	err := row.Scan(&event.ID)

	return event, err
}

func (p *psql) GetAuditEvents(action types.EventType, limit int) ([]database.AuditEvent, error) {
	rows, err := p.db.Query(statements.GetEvents, action, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []database.AuditEvent{}

	for rows.Next() {
		e := database.AuditEvent{}

		if err := rows.Scan(&e.ID, &e.Type, &e.Data, &e.Timestamp); err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	return events, rows.Err()
}
