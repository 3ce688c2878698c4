package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/gymlogger/internal/cache"
	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/logs"
	"github.com/2beens/gymlogger/internal/telemetry/metrics"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type logsLister interface {
	ListByExercise(ctx context.Context, exerciseID int, from, to *time.Time) ([]logs.Log, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

type Service struct {
	logs           logsLister
	exercises      exerciseGetter
	cal            *calendar.Calendar
	cache          cache.Cache
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
}

func NewService(
	logsLister logsLister,
	exerciseGetter exerciseGetter,
	cal *calendar.Calendar,
	progressCache cache.Cache,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		logs:           logsLister,
		exercises:      exerciseGetter,
		cal:            cal,
		cache:          progressCache,
		cacheTTL:       cacheTTL,
		metricsManager: metricsManager,
	}
}

// cacheKey is bound to the current week, so entries roll over with the window.
func (s *Service) cacheKey(exercise exercises.Exercise) string {
	return fmt.Sprintf("progress::%d::%s", exercise.ID, s.cal.WeekKey(s.cal.Now()))
}

func (s *Service) GetExerciseProgressByID(ctx context.Context, exerciseID int) (*Progress, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", exerciseID, err)
	}
	return s.GetExerciseProgress(ctx, *exercise)
}

// GetExerciseProgress returns the volume series of the trailing WindowWeeks weeks, or
// nil when the exercise has no qualifying logs at all. Logs outside the window still
// count as data: the result then has every point hidden.
func (s *Service) GetExerciseProgress(ctx context.Context, exercise exercises.Exercise) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))

	key := s.cacheKey(exercise)
	if cached, ok := s.cache.Get(key); ok {
		var progress *Progress
		if err := json.Unmarshal(cached, &progress); err == nil {
			s.metricsManager.CounterProgressCacheHits.Inc()
			span.SetAttributes(attribute.Bool("cache-hit", true))
			return progress, nil
		}
		log.Warnf("progress cache [%s]: unreadable entry, recomputing", key)
	}
	s.metricsManager.CounterProgressCacheMiss.Inc()

	generation := s.cache.Generation()
	exerciseLogs, err := s.logs.ListByExercise(ctx, exercise.ID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list logs of exercise %d: %w", exercise.ID, err)
	}

	var progress *Progress
	if HasQualifyingLogs(exerciseLogs) {
		volumes := CalculateWeeklyVolumes(exerciseLogs, exercise, s.cal)
		progress = CreateDatasets(volumes, GenerateWeeksAndLabels(s.cal), exercise)
	}

	if s.cache.Generation() != generation {
		// logs changed while this was computed
		log.Debugf("progress cache [%s]: cleared meanwhile, not storing", key)
	} else if encoded, err := json.Marshal(progress); err != nil {
		log.Errorf("progress cache [%s]: marshal: %s", key, err)
	} else if err := s.cache.Set(key, encoded, s.cacheTTL); err != nil {
		log.Warnf("progress cache: %s", err)
	}

	return progress, nil
}
