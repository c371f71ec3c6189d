package backend

import (
	"fmt"

	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/database"
	"github.com/devusSs/court-kraken/internal/database/postgres"
	"github.com/devusSs/court-kraken/internal/database/sqlite"
)

// Opens the audit log storage selected by the database driver in cfg.
func Open(cfg *config.Config) (database.Service, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(cfg)
	case "sqlite":
		return sqlite.New(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
