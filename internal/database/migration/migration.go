package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_entitlements",
		SQL: `CREATE TABLE IF NOT EXISTS entitlements (
  email            TEXT        PRIMARY KEY,
  tier             TEXT        NOT NULL DEFAULT 'pro',
  status           TEXT        NOT NULL DEFAULT 'active',
  payment_ref      TEXT        NOT NULL DEFAULT '',
  subscription_ref TEXT        NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_billing_events",
		SQL: `CREATE TABLE IF NOT EXISTS billing_events (
  event_id    TEXT        PRIMARY KEY,
  email       TEXT        NOT NULL DEFAULT '',
  received_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_contact_messages",
		SQL: `CREATE TABLE IF NOT EXISTS contact_messages (
  id            BIGSERIAL   PRIMARY KEY,
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL,
  subject       TEXT        NOT NULL,
  body          TEXT        NOT NULL,
  status        TEXT        NOT NULL DEFAULT 'new',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  processed_at  TIMESTAMPTZ NULL,
  source_ip     TEXT        NULL,
  user_agent    TEXT        NULL,
  response_sent BOOLEAN     NOT NULL DEFAULT false
);`,
	},
	{
		Name: "create_index_contact_messages_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contact_email ON contact_messages (email);`,
	},
	{
		Name: "create_index_contact_messages_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contact_status ON contact_messages (status);`,
	},
	{
		Name: "create_index_contact_messages_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contact_created ON contact_messages (created_at DESC);`,
	},
	{
		Name: "create_table_contact_analytics",
		SQL: `CREATE TABLE IF NOT EXISTS contact_analytics (
  id           BIGSERIAL   PRIMARY KEY,
  contact_date DATE        NOT NULL,
  subject      TEXT        NOT NULL,
  status       TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Uniqueness makes the daily rollup upsert idempotent.
		Name: "create_unique_index_contact_analytics",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS idx_analytics_unique
  ON contact_analytics (contact_date, subject, status);`,
	},
}

// EnsureMigrated checks if the 'entitlements' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.entitlements') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
