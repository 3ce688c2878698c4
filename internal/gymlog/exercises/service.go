package exercises

import (
	"context"
	"fmt"

	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	ListDays(ctx context.Context) ([]Day, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id int) error
	ListByDay(ctx context.Context, dayID int) ([]Exercise, error)
	SwapSlots(ctx context.Context, dayID, from, to int) error
}

// changeListener is told whenever an exercise definition changes, so derived
// data (cached progress) can be dropped.
type changeListener interface {
	Clear()
}

type Service struct {
	repo     exercisesRepo
	onChange changeListener
}

func NewService(repo exercisesRepo, onChange changeListener) *Service {
	return &Service{
		repo:     repo,
		onChange: onChange,
	}
}

func (s *Service) changed() {
	if s.onChange != nil {
		s.onChange.Clear()
	}
}

func (s *Service) ListDays(ctx context.Context) ([]Day, error) {
	days, err := s.repo.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	return days, nil
}

// Schedule returns the 4 exercise slots of a day.
func (s *Service) Schedule(ctx context.Context, dayID int) (_ Slots, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.schedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day.id", dayID))

	if dayID < 0 || dayID >= DaysInWeek {
		return Slots{}, fmt.Errorf("%w: %d", ErrDayNotFound, dayID)
	}

	exercises, err := s.repo.ListByDay(ctx, dayID)
	if err != nil {
		return Slots{}, fmt.Errorf("list exercises of day %d: %w", dayID, err)
	}
	return NewSlots(exercises), nil
}

func (s *Service) Get(ctx context.Context, id int) (*Exercise, error) {
	exercise, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exercise, nil
}

func (s *Service) Create(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	added, err := s.repo.Add(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("add exercise [%s]: %w", exercise.Name, err)
	}

	log.Debugf("exercise %d [%s] added to day %d slot %d", added.ID, added.Name, added.DayID, added.OrderNum)
	return added, nil
}

func (s *Service) Update(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &exercise); err != nil {
		return nil, fmt.Errorf("update exercise %d: %w", exercise.ID, err)
	}

	s.changed()
	return &exercise, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}

	log.Debugf("exercise %d deleted, with its logs", id)
	s.changed()
	return nil
}

// SwapSlots exchanges two slots of a day; moving into an empty slot is a swap with nothing.
func (s *Service) SwapSlots(ctx context.Context, dayID, from, to int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.swapslots")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	switch {
	case dayID < 0 || dayID >= DaysInWeek:
		return fmt.Errorf("%w: %d", ErrDayNotFound, dayID)
	case IsFixedRestDay(dayID):
		return fmt.Errorf("%w: day %d is a rest day", ErrValidation, dayID)
	case !ValidSlot(from) || !ValidSlot(to):
		return fmt.Errorf("%w: slots %d, %d outside 1..%d", ErrValidation, from, to, SlotsPerDay)
	case from == to:
		return nil
	}

	if err := s.repo.SwapSlots(ctx, dayID, from, to); err != nil {
		return fmt.Errorf("swap slots %d <-> %d of day %d: %w", from, to, dayID, err)
	}
	return nil
}
