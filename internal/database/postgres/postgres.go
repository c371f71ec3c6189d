package postgres

import (
	"database/sql"
	"fmt"

	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/database/postgres/statements"
	_ "github.com/lib/pq"
)

// Internal Postgres structure which executes database.Service layer functions.
type psql struct {
	db *sql.DB
}

// Inits a new Postgres connection and returns database.Service layer.
func New(cfg *config.Config) (database.Service, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	return NewFromDSN(dsn)
}

// Opens a connection from a ready-made lib/pq DSN.
func NewFromDSN(dsn string) (database.Service, error) {
	db, err := sql.Open("postgres", dsn)

	return &psql{db}, err
}

// Test database connection.
func (p *psql) Ping() error {
	return p.db.Ping()
}

// Closes the database connection.
func (p *psql) Close() error {
	return p.db.Close()
}

// Creates the audit tables (check statements/tables.go) on database.
func (p *psql) Migrate() error {
	if _, err := p.db.Exec(statements.CreateAuditEventsTable); err != nil {
		return err
	}

	_, err := p.db.Exec(statements.CreateAuditEventsIndex)

	return err
}
