package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_students",
		SQL: `CREATE TABLE IF NOT EXISTS students (
  id          BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  full_name   TEXT        NOT NULL,
  email       TEXT        NOT NULL,
  phone       TEXT        NOT NULL DEFAULT '',
  course      TEXT        NOT NULL DEFAULT '',
  attendance  INTEGER     NOT NULL DEFAULT 0 CHECK (attendance BETWEEN 0 AND 100),
  status      TEXT        NOT NULL DEFAULT 'ACTIVE',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ,
  CONSTRAINT students_email_key UNIQUE (email),
  CONSTRAINT students_modified_after_created CHECK (modified_at IS NULL OR modified_at >= created_at)
);`,
	},
	{
		Name: "create_table_events",
		SQL: `CREATE TABLE IF NOT EXISTS events (
  id               BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  title            TEXT        NOT NULL,
  event_date       DATE,
  type             TEXT        NOT NULL DEFAULT '',
  description      TEXT        NOT NULL DEFAULT '',
  max_participants INTEGER     NOT NULL DEFAULT 0 CHECK (max_participants >= 0),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at      TIMESTAMPTZ,
  CONSTRAINT events_modified_after_created CHECK (modified_at IS NULL OR modified_at >= created_at)
);`,
	},
	{
		Name: "create_index_students_course",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_students_course ON students (course);`,
	},
	{
		Name: "create_index_events_event_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_events_event_date ON events (event_date);`,
	},
}

const sentinelQuery = `SELECT to_regclass('public.students') IS NOT NULL AND to_regclass('public.events') IS NOT NULL`

// EnsureMigrated creates the record tables when either of them is missing.
// Every step is idempotent, so a partially applied schema is completed on the next boot.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel tables")
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
