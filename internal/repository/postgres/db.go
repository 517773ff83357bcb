package postgres

import (
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"docverify/internal/config"
)

// connMaxLifetime bounds how long a pooled connection is reused.
const connMaxLifetime = 30 * time.Minute

// NewDB opens the template database pool and verifies it is reachable.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	log.Printf("postgres.NewDB: connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
