package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:itbot.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/itbot?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY,
  text TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  options_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  user_id INTEGER PRIMARY KEY,
  session_id TEXT NOT NULL,
  finished INTEGER NOT NULL DEFAULT 0,
  state_json TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS specializations (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  careers TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '',
  tech_score INTEGER NOT NULL DEFAULT 0,
  analytic_score INTEGER NOT NULL DEFAULT 0,
  creative_score INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS institutions (
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  score_min INTEGER NOT NULL DEFAULT 0,
  score_max INTEGER NOT NULL DEFAULT 0,
  url TEXT,
  specialization_id INTEGER NOT NULL REFERENCES specializations(id)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  actor TEXT NOT NULL DEFAULT '',
  typ TEXT NOT NULL,                        -- e.g., InstitutionAdded
  key TEXT NOT NULL,                        -- natural key: name|city
  data TEXT NOT NULL,                       -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY,
  text TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  options_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  user_id BIGINT PRIMARY KEY,
  session_id TEXT NOT NULL,
  finished INTEGER NOT NULL DEFAULT 0,
  state_json TEXT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS specializations (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  careers TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '',
  tech_score INTEGER NOT NULL DEFAULT 0,
  analytic_score INTEGER NOT NULL DEFAULT 0,
  creative_score INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS institutions (
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  score_min INTEGER NOT NULL DEFAULT 0,
  score_max INTEGER NOT NULL DEFAULT 0,
  url TEXT,
  specialization_id INTEGER NOT NULL REFERENCES specializations(id)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  actor TEXT NOT NULL DEFAULT '',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
