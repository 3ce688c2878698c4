// Package schedule answers what is on for today: the current day by the calendar,
// whether it is a rest day, and its exercise slots.
package schedule

import (
	"context"
	"fmt"

	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/settings"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=schedule_mocks_test.go -package=schedule_test

type daySchedule interface {
	ListDays(ctx context.Context) ([]exercises.Day, error)
	Schedule(ctx context.Context, dayID int) (exercises.Slots, error)
}

type restDays interface {
	RestDays(ctx context.Context) (settings.RestDays, error)
}

type Today struct {
	Day       exercises.Day   `json:"day"`
	Date      string          `json:"date"`
	IsRestDay bool            `json:"isRestDay"`
	Exercises exercises.Slots `json:"exercises"`
}

type Service struct {
	days     daySchedule
	restDays restDays
	cal      *calendar.Calendar
}

func NewService(days daySchedule, restDays restDays, cal *calendar.Calendar) *Service {
	return &Service{
		days:     days,
		restDays: restDays,
		cal:      cal,
	}
}

// Today returns today's day and slots. Slots are returned on rest days too, so the
// schedule can still be looked at.
func (s *Service) Today(ctx context.Context) (_ *Today, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.cal.Now()
	dayID := s.cal.Weekday(now)
	span.SetAttributes(attribute.Int("day.id", dayID))

	days, err := s.days.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	today := &Today{
		Day:  exercises.Day{ID: dayID, Name: now.Weekday().String()},
		Date: s.cal.DateKey(now),
	}
	for _, d := range days {
		if d.ID == dayID {
			today.Day = d
			break
		}
	}

	rest, err := s.restDays.RestDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rest days: %w", err)
	}
	today.IsRestDay = rest[dayID]

	if exercises.IsFixedRestDay(dayID) {
		log.Debugf("today (%s) is a fixed rest day", today.Day.Name)
		return today, nil
	}

	slots, err := s.days.Schedule(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("day %d schedule: %w", dayID, err)
	}
	today.Exercises = slots
	return today, nil
}
