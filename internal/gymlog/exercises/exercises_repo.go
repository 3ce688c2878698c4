package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"
	"github.com/2beens/gymlogger/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const exerciseColumns = `id, day_id, name, is_one_arm, weight, increment, order_num`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanExercise(row pgx.Row, e *Exercise) error {
	return row.Scan(&e.ID, &e.DayID, &e.Name, &e.IsOneArm, &e.Weight, &e.Increment, &e.OrderNum)
}

func collectExercises(rows pgx.Rows) ([]Exercise, error) {
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := scanExercise(rows, &e); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// mapWriteErr turns constraint violations into the package errors.
func mapWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case pkg.IsUniqueViolationError(err):
		return fmt.Errorf("%w: %w", ErrSlotTaken, err)
	case pkg.IsForeignKeyViolationError(err):
		return fmt.Errorf("%w: %w", ErrDayNotFound, err)
	case pkg.IsCheckViolationError(err):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return err
	}
}

func (r *Repo) ListDays(ctx context.Context) (_ []Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listdays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM day ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]Day, 0, DaysInWeek)
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (day_id, name, is_one_arm, weight, increment, order_num)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		exercise.DayID, exercise.Name, exercise.IsOneArm, exercise.Weight, exercise.Increment, exercise.OrderNum,
	).Scan(&exercise.ID)
	if err != nil {
		return nil, mapWriteErr(err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Exercise
	err = scanExercise(
		r.db.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercise WHERE id = $1`, id),
		&e,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Update(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise
			SET day_id = $1, name = $2, is_one_arm = $3, weight = $4, increment = $5, order_num = $6
			WHERE id = $7;`,
		exercise.DayID, exercise.Name, exercise.IsOneArm, exercise.Weight, exercise.Increment, exercise.OrderNum,
		exercise.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Delete removes the exercise; its logs go with it (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) ListByDay(ctx context.Context, dayID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listbyday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day.id", dayID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercise WHERE day_id = $1 ORDER BY order_num ASC`,
		dayID,
	)
	if err != nil {
		return nil, err
	}
	return collectExercises(rows)
}

func (r *Repo) ListByIDs(ctx context.Context, ids []int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listbyids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ids.count", len(ids)))

	if len(ids) == 0 {
		return []Exercise{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercise WHERE id = ANY($1) ORDER BY day_id, order_num`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return collectExercises(rows)
}

// SwapSlots exchanges the exercises in slots from and to of a day. If one of the
// slots is empty, the other exercise simply moves there. A single UPDATE keeps the
// (day_id, order_num) constraint satisfied, as it is only checked at statement end.
func (r *Repo) SwapSlots(ctx context.Context, dayID, from, to int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.swapslots")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("day.id", dayID),
		attribute.Int("from", from),
		attribute.Int("to", to),
	)

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

	tag, err := tx.Exec(
		ctx,
		`UPDATE exercise
			SET order_num = CASE WHEN order_num = $2 THEN $3 ELSE $2 END
			WHERE day_id = $1 AND order_num IN ($2, $3);`,
		dayID, from, to,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
