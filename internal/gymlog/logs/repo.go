package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db  *pgxpool.Pool
	cal *calendar.Calendar
}

// NewRepo returns a logs repo; cal decides which calendar day a log belongs to.
func NewRepo(db *pgxpool.Pool, cal *calendar.Calendar) *Repo {
	return &Repo{
		db:  db,
		cal: cal,
	}
}

// inTx runs fn in one transaction: rolled back if fn fails, committed otherwise.
func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

// Save applies the weight bumps and inserts the session logs in one transaction.
// An exercise has at most one session per calendar day: if any of the logged
// exercises already has rows on the day of its new logs, nothing is written and
// ErrSessionExists is returned.
func (r *Repo) Save(ctx context.Context, bumps []WeightBump, logs []Log) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("bumps.count", len(bumps)),
		attribute.Int("logs.count", len(logs)),
	)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := r.checkNoSessionOnDay(ctx, tx, logs); err != nil {
			return err
		}

		for _, bump := range bumps {
			tag, err := tx.Exec(ctx, `UPDATE exercise SET weight = $2 WHERE id = $1`, bump.ExerciseID, bump.To)
			if err != nil {
				return fmt.Errorf("bump weight of exercise %d: %w", bump.ExerciseID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("bump weight: %w: %d", exercises.ErrExerciseNotFound, bump.ExerciseID)
			}
		}

		for _, l := range logs {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO log (exercise_id, weight, set_num, is_left, reps, created_at)
					VALUES ($1, $2, $3, $4, $5, $6)`,
				l.ExerciseID, l.Weight, l.SetNum, l.IsLeft, l.Reps, l.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert log of exercise %d, set %d: %w", l.ExerciseID, l.SetNum, err)
			}
		}
		return nil
	})
}

type exerciseDay struct {
	exerciseID int
	date       string
}

func (r *Repo) checkNoSessionOnDay(ctx context.Context, tx pgx.Tx, logs []Log) error {
	days := map[exerciseDay]time.Time{}
	var ids []int
	for _, l := range logs {
		key := exerciseDay{exerciseID: l.ExerciseID, date: r.cal.DateKey(l.CreatedAt)}
		if _, ok := days[key]; ok {
			continue
		}
		days[key] = l.CreatedAt
		ids = append(ids, l.ExerciseID)
	}
	if len(days) == 0 {
		return nil
	}

	// concurrent saves of the same exercises queue up here
	if _, err := tx.Exec(ctx, `SELECT id FROM exercise WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids); err != nil {
		return fmt.Errorf("lock exercises: %w", err)
	}

	for key, at := range days {
		from, to := r.cal.DayRange(at)
		var exists bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM log
				WHERE exercise_id = $1 AND created_at >= $2 AND created_at < $3
			)`, key.exerciseID, from, to,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check logs of exercise %d on %s: %w", key.exerciseID, key.date, err)
		}
		if exists {
			return fmt.Errorf("%w: exercise %d on %s", ErrSessionExists, key.exerciseID, key.date)
		}
	}
	return nil
}

// UpdateReps sets the reps of the given log rows. It returns the number of rows found.
func (r *Repo) UpdateReps(ctx context.Context, updates []RepsUpdate) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.updatereps")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("updates.count", len(updates)))

	var updated int64
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		for _, u := range updates {
			tag, err := tx.Exec(ctx, `UPDATE log SET reps = $2 WHERE id = $1`, u.ID, u.Reps)
			if err != nil {
				return fmt.Errorf("update log %d: %w", u.ID, err)
			}
			updated += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteBatch deletes the log rows by id and returns how many were removed.
func (r *Repo) DeleteBatch(ctx context.Context, ids []int) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.deletebatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ids.count", len(ids)))

	var deleted int64
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM log WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ListLogTimes returns the distinct log timestamps in [from, to), newest first.
// Nil bounds are open.
func (r *Repo) ListLogTimes(ctx context.Context, from, to *time.Time) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.listlogtimes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT created_at
		FROM log
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}

	times, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("collect log times: %w", err)
	}
	return times, nil
}

// ListLoggedExercises returns the distinct exercises with at least one log in [from, to).
func (r *Repo) ListLoggedExercises(ctx context.Context, from, to time.Time) (_ []exercises.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.listloggedexercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.day_id, e.name, e.is_one_arm, e.weight, e.increment, e.order_num
		FROM exercise e
		WHERE EXISTS (
			SELECT 1 FROM log l
			WHERE l.exercise_id = e.id AND l.created_at >= $1 AND l.created_at < $2
		)
		ORDER BY e.order_num, e.id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logged := make([]exercises.Exercise, 0, exercises.SlotsPerDay)
	for rows.Next() {
		var e exercises.Exercise
		if err := rows.Scan(&e.ID, &e.DayID, &e.Name, &e.IsOneArm, &e.Weight, &e.Increment, &e.OrderNum); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		logged = append(logged, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logged, nil
}

// ListByExercise returns the logs of one exercise in [from, to), oldest first.
// Nil bounds are open.
func (r *Repo) ListByExercise(ctx context.Context, exerciseID int, from, to *time.Time) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.listbyexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise_id, weight, set_num, is_left, reps, created_at
		FROM log
		WHERE exercise_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at, set_num, is_left DESC NULLS LAST, id
	`, exerciseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]Log, 0)
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.ExerciseID, &l.Weight, &l.SetNum, &l.IsLeft, &l.Reps, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
