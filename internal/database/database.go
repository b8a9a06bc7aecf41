// Package database owns the role-scoped connection to the relational store.
package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/matchpoint-labs/wtadb/internal/config"
	"github.com/matchpoint-labs/wtadb/internal/fault"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Role selects the privilege tier of a connection. Admins may execute
// mutating statements; readers may only query and self-register.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Connect opens the connection for role and ensures the schema is up to date.
// It returns the live connection and a teardown func. Exactly one connection
// is opened per role per process lifetime; the caller owns the teardown.
func Connect(role Role, cfg config.Config) (*sql.DB, func(), error) {
	dsn := cfg.Reader
	if role == RoleAdmin {
		dsn = cfg.Admin
	}

	var db *sql.DB
	var err error
	if dsn.URL == "" {
		log.Info("Opening local database", "role", role, "path", cfg.DBPath)
		db, err = sql.Open("libsql", "file:"+cfg.DBPath)
	} else {
		log.Info("Opening remote database", "role", role, "url", dsn.URL)
		db, err = sql.Open("libsql", dsn.URL+"?authToken="+dsn.AuthToken)
	}
	if err != nil {
		return nil, nil, fault.New(fault.KindConnection, "connect", fmt.Errorf("failed to open database: %w", err))
	}
	// One connection per role. This also keeps an in-memory database from
	// being split across pool members.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fault.New(fault.KindConnection, "connect", fmt.Errorf("failed to reach database: %w", err))
	}

	if err = prepare(db); err != nil {
		db.Close()
		return nil, nil, fault.New(fault.KindConnection, "connect", err)
	}

	teardown := func() {
		log.Info("Closing database connection", "role", role)
		db.Close()
	}
	return db, teardown, nil
}

// prepare enables foreign keys and applies the embedded migrations.
func prepare(db *sql.DB) error {
	// Foreign key support is not enabled by default in SQLite
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Debug("Database schema is up to date")
	return nil
}
