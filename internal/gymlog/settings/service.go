package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=settings_test

const RestDaysMaskKey = "restDaysMask"

// weekdayBits covers Monday..Friday, the only days a user can mark as rest.
const weekdayBits = 1<<exercises.FirstRestDayID - 1

// RestDays is indexed by day id, Monday=0 .. Sunday=6.
type RestDays [exercises.DaysInWeek]bool

// Mask encodes the weekday overrides, bit i set for rest day i (0..4).
func (d RestDays) Mask() int {
	mask := 0
	for i := 0; i < exercises.FirstRestDayID; i++ {
		if d[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// RestDaysFromMask decodes a mask; Saturday and Sunday are always rest days.
func RestDaysFromMask(mask int) RestDays {
	var days RestDays
	for i := range days {
		days[i] = exercises.IsFixedRestDay(i) || (i < exercises.FirstRestDayID && mask&(1<<i) != 0)
	}
	return days
}

type settingsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Service struct {
	repo settingsRepo
}

func NewService(repo settingsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) RestDays(ctx context.Context) (_ RestDays, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.settings.restdays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, found, err := s.repo.Get(ctx, RestDaysMaskKey)
	if err != nil {
		return RestDays{}, fmt.Errorf("get rest days mask: %w", err)
	}
	if !found {
		return RestDaysFromMask(0), nil
	}

	mask, err := strconv.Atoi(value)
	if err != nil {
		log.Warnf("rest days mask [%s] is not a number, ignoring it", value)
		return RestDaysFromMask(0), nil
	}
	return RestDaysFromMask(mask & weekdayBits), nil
}

// SetRestDays stores the weekday overrides and returns the effective rest days.
func (s *Service) SetRestDays(ctx context.Context, days RestDays) (_ RestDays, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.settings.setrestdays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	mask := days.Mask()
	span.SetAttributes(attribute.Int("rest-days.mask", mask))
	if err := s.repo.Set(ctx, RestDaysMaskKey, strconv.Itoa(mask)); err != nil {
		return RestDays{}, fmt.Errorf("set rest days mask: %w", err)
	}
	return RestDaysFromMask(mask), nil
}
