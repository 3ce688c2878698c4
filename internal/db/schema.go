package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS day (
	id   INTEGER PRIMARY KEY,
	name TEXT    NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS exercise (
	id         SERIAL PRIMARY KEY,
	day_id     INTEGER          NOT NULL REFERENCES day (id) ON DELETE CASCADE,
	name       TEXT             NOT NULL,
	is_one_arm BOOLEAN          NOT NULL DEFAULT FALSE,
	weight     DOUBLE PRECISION NOT NULL DEFAULT 0,
	order_num  INTEGER          NOT NULL CHECK (order_num BETWEEN 1 AND 4),
	CONSTRAINT exercise_day_slot_key UNIQUE (day_id, order_num) DEFERRABLE INITIALLY IMMEDIATE
);

CREATE TABLE IF NOT EXISTS log (
	id          SERIAL PRIMARY KEY,
	exercise_id INTEGER          NOT NULL REFERENCES exercise (id) ON DELETE CASCADE,
	weight      DOUBLE PRECISION NOT NULL,
	set_num     INTEGER          NOT NULL CHECK (set_num BETWEEN 1 AND 4),
	is_left     BOOLEAN,
	reps        INTEGER,
	created_at  TIMESTAMPTZ      NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_log_created_at ON log (created_at);
CREATE INDEX IF NOT EXISTS ix_log_exercise_created_at ON log (exercise_id, created_at);

CREATE TABLE IF NOT EXISTS app_settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// additive column migrations, applied in order on every start
var columnMigrations = []string{
	`ALTER TABLE exercise ADD COLUMN IF NOT EXISTS increment DOUBLE PRECISION NOT NULL DEFAULT 0`,
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Migrate creates the tables if missing, applies the additive column migrations and
// seeds the 7 day rows. Safe to call on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, stmt := range columnMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate [%s]: %w", stmt, err)
		}
	}

	seeded := int64(0)
	for id, name := range weekdays {
		tag, err := pool.Exec(ctx, `INSERT INTO day (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, id, name)
		if err != nil {
			return fmt.Errorf("seed day %d: %w", id, err)
		}
		seeded += tag.RowsAffected()
	}
	if seeded > 0 {
		log.Infof("seeded %d day rows", seeded)
	}

	return nil
}
