package logs

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/telemetry/metrics"
	"github.com/2beens/gymlogger/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=logs_test

// DefaultCeilingReps is the rep count every set must reach for auto-progression,
// when none is configured.
const DefaultCeilingReps = 10

type logsRepo interface {
	Save(ctx context.Context, bumps []WeightBump, logs []Log) error
	UpdateReps(ctx context.Context, updates []RepsUpdate) (int64, error)
	DeleteBatch(ctx context.Context, ids []int) (int64, error)
	ListLogTimes(ctx context.Context, from, to *time.Time) ([]time.Time, error)
	ListLoggedExercises(ctx context.Context, from, to time.Time) ([]exercises.Exercise, error)
	ListByExercise(ctx context.Context, exerciseID int, from, to *time.Time) ([]Log, error)
}

type exercisesLookup interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
	ListByIDs(ctx context.Context, ids []int) ([]exercises.Exercise, error)
}

// changeListener is told whenever logs change, so derived data (cached progress)
// can be dropped.
type changeListener interface {
	Clear()
}

type SessionOptions struct {
	AutoProgression bool
	CeilingReps     int
}

type SessionResult struct {
	CreatedAt time.Time `json:"createdAt"`
	Written   int       `json:"written"`
	// Skipped lists draft exercise ids with no exercise behind them.
	Skipped    []int        `json:"skipped"`
	Progressed []WeightBump `json:"progressed"`
}

type Service struct {
	repo           logsRepo
	exercises      exercisesLookup
	cal            *calendar.Calendar
	metricsManager *metrics.Manager
	onChange       changeListener
}

func NewService(
	repo logsRepo,
	exercisesLookup exercisesLookup,
	cal *calendar.Calendar,
	metricsManager *metrics.Manager,
	onChange changeListener,
) *Service {
	return &Service{
		repo:           repo,
		exercises:      exercisesLookup,
		cal:            cal,
		metricsManager: metricsManager,
		onChange:       onChange,
	}
}

func (s *Service) changed() {
	if s.onChange != nil {
		s.onChange.Clear()
	}
}

// InsertDayLogs writes the draft as one session, using the given exercise records.
// Draft entries with no matching exercise are skipped with a warning.
func (s *Service) InsertDayLogs(ctx context.Context, draft Draft, exs []exercises.Exercise) (_ *SessionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.insertdaylogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(draft) == 0 {
		return nil, ErrEmptyDraft
	}
	return s.save(ctx, draft, exs, SessionOptions{})
}

// SaveSession looks up the draft's exercises and writes the session. With auto-progression
// on, an exercise whose every set reached the ceiling gets its weight increased first,
// and the session is written at the new weight.
func (s *Service) SaveSession(ctx context.Context, draft Draft, opts SessionOptions) (_ *SessionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.savesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("draft.size", len(draft)),
		attribute.Bool("auto-progression", opts.AutoProgression),
	)

	if len(draft) == 0 {
		return nil, ErrEmptyDraft
	}

	exs, err := s.exercises.ListByIDs(ctx, draftExerciseIDs(draft))
	if err != nil {
		return nil, fmt.Errorf("list draft exercises: %w", err)
	}
	return s.save(ctx, draft, exs, opts)
}

func draftExerciseIDs(draft Draft) []int {
	ids := make([]int, 0, len(draft))
	for id := range draft {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Service) save(ctx context.Context, draft Draft, exs []exercises.Exercise, opts SessionOptions) (*SessionResult, error) {
	byID := make(map[int]exercises.Exercise, len(exs))
	for _, ex := range exs {
		byID[ex.ID] = ex
	}

	result := &SessionResult{
		CreatedAt:  s.cal.Now(),
		Skipped:    []int{},
		Progressed: []WeightBump{},
	}

	ceiling := opts.CeilingReps
	if ceiling <= 0 {
		ceiling = DefaultCeilingReps
	}

	var logs []Log
	for _, id := range draftExerciseIDs(draft) {
		ex, ok := byID[id]
		if !ok {
			log.Warnf("save session: exercise %d not found, skipping its sets", id)
			result.Skipped = append(result.Skipped, id)
			continue
		}

		entry := draft[id]
		weight := ex.Weight
		if opts.AutoProgression && ceilingReached(entry, ex.IsOneArm, ceiling) && ex.Increment > 0 {
			weight = ex.Weight + ex.Increment
			result.Progressed = append(result.Progressed, WeightBump{ExerciseID: ex.ID, From: ex.Weight, To: weight})
		}

		logs = append(logs, entryLogs(ex, entry, weight, result.CreatedAt)...)
	}

	if len(logs) == 0 && len(result.Progressed) == 0 {
		log.Debugf("save session: nothing to write for %d draft entries", len(draft))
		return result, nil
	}

	if err := s.repo.Save(ctx, result.Progressed, logs); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	result.Written = len(logs)

	for _, bump := range result.Progressed {
		log.Infof("auto-progression: exercise %d weight %.2f -> %.2f", bump.ExerciseID, bump.From, bump.To)
	}
	log.Debugf("save session: wrote %d logs, skipped %d exercises", len(logs), len(result.Skipped))

	s.metricsManager.CounterLogsWritten.Add(float64(len(logs)))
	s.metricsManager.CounterAutoProgressions.Add(float64(len(result.Progressed)))
	s.changed()

	return result, nil
}

// ceilingReached reports whether every set of the entry (both arms for one-arm
// exercises) was entered with at least ceiling reps.
func ceilingReached(entry DraftEntry, isOneArm bool, ceiling int) bool {
	cells := entry.Right[:]
	if isOneArm {
		cells = append(slices.Clone(entry.Left[:]), entry.Right[:]...)
	}
	for _, c := range cells {
		if !c.Entered() || c.Reps() < ceiling {
			return false
		}
	}
	return true
}

// entryLogs turns the entered cells of one draft entry into log rows. Empty cells are not written.
func entryLogs(ex exercises.Exercise, entry DraftEntry, weight float64, createdAt time.Time) []Log {
	logs := make([]Log, 0, 2*SetsPerExercise)
	add := func(setNum int, cell DraftCell, isLeft *bool) {
		if !cell.Entered() {
			return
		}
		reps := cell.Reps()
		logs = append(logs, Log{
			ExerciseID: ex.ID,
			Weight:     weight,
			SetNum:     setNum,
			IsLeft:     isLeft,
			Reps:       &reps,
			CreatedAt:  createdAt,
		})
	}

	for i := 0; i < SetsPerExercise; i++ {
		if ex.IsOneArm {
			left, right := true, false
			add(i+1, entry.Left[i], &left)
			add(i+1, entry.Right[i], &right)
		} else {
			add(i+1, entry.Right[i], nil)
		}
	}
	return logs
}

// GetLoggedWeeks returns every week with at least one log, newest first, or nil
// when nothing was logged yet.
func (s *Service) GetLoggedWeeks(ctx context.Context) (_ []LoggedWeek, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.getloggedweeks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	times, err := s.repo.ListLogTimes(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list log times: %w", err)
	}
	if len(times) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	weeks := make([]LoggedWeek, 0)
	for _, t := range times {
		weekStart := s.cal.WeekStart(t)
		key := s.cal.DateKey(weekStart)
		if seen[key] {
			continue
		}
		seen[key] = true
		weeks = append(weeks, LoggedWeek{
			Display:   s.cal.WeekLabel(weekStart),
			StartDate: key,
		})
	}

	slices.SortStableFunc(weeks, func(a, b LoggedWeek) int {
		switch {
		case a.StartDate > b.StartDate:
			return -1
		case a.StartDate < b.StartDate:
			return 1
		}
		return 0
	})
	return weeks, nil
}

// GetLoggedDaysByWeek returns the Mon..Fri days of the week that have logs; untrained days are nil.
func (s *Service) GetLoggedDaysByWeek(ctx context.Context, weekStart string) (_ [calendar.TrainingDays]*LoggedDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.getloggeddaysbyweek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week-start", weekStart))

	var days [calendar.TrainingDays]*LoggedDay

	start, err := s.cal.ParseDate(weekStart)
	if err != nil {
		return days, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	from, to := s.cal.TrainingWeekRange(s.cal.WeekStart(start))

	times, err := s.repo.ListLogTimes(ctx, &from, &to)
	if err != nil {
		return days, fmt.Errorf("list log times: %w", err)
	}

	for _, t := range times {
		idx := s.cal.Weekday(t)
		if idx >= calendar.TrainingDays || days[idx] != nil {
			continue
		}
		local := s.cal.In(t)
		days[idx] = &LoggedDay{
			Display: local.Weekday().String(),
			Date:    s.cal.DateKey(local),
		}
	}
	return days, nil
}

// GetLoggedExercisesByDay returns the exercises logged on date, by slot.
func (s *Service) GetLoggedExercisesByDay(ctx context.Context, date string) (_ exercises.Slots, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.getloggedexercisesbyday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	day, err := s.cal.ParseDate(date)
	if err != nil {
		return exercises.Slots{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	from, to := s.cal.DayRange(day)

	logged, err := s.repo.ListLoggedExercises(ctx, from, to)
	if err != nil {
		return exercises.Slots{}, fmt.Errorf("list logged exercises: %w", err)
	}
	return exercises.NewSlots(logged), nil
}

// GetLogsByExerciseID looks the exercise up and returns its logs of date.
func (s *Service) GetLogsByExerciseID(ctx context.Context, date string, exerciseID int) (*DayLogIdentity, error) {
	ex, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", exerciseID, err)
	}
	return s.GetLogsByExercise(ctx, date, *ex)
}

// GetLogsByExercise returns the sets of exercise logged on date. Sets with no row read
// back as Unsaved with 0 reps.
func (s *Service) GetLogsByExercise(ctx context.Context, date string, exercise exercises.Exercise) (_ *DayLogIdentity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.getlogsbyexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("date", date),
		attribute.Int("exercise.id", exercise.ID),
	)

	day, err := s.cal.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	from, to := s.cal.DayRange(day)

	dayLogs, err := s.repo.ListByExercise(ctx, exercise.ID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("list logs of exercise %d: %w", exercise.ID, err)
	}

	identity := &DayLogIdentity{
		ExerciseID: exercise.ID,
		Date:       s.cal.DateKey(day),
		Weight:     exercise.Weight,
		Right:      unsavedCells(),
	}
	if exercise.IsOneArm {
		identity.Left = unsavedCells()
	}
	if len(dayLogs) > 0 {
		identity.Weight = dayLogs[0].Weight
	}

	// later rows for the same set overwrite earlier ones
	for _, l := range dayLogs {
		idx := l.SetNum - 1
		if idx < 0 || idx >= SetsPerExercise {
			continue
		}
		reps := 0
		if l.Reps != nil {
			reps = *l.Reps
		}
		cell := Saved{ID: l.ID, Reps: reps}

		isLeft := l.IsLeft != nil && *l.IsLeft
		switch {
		case isLeft && identity.Left != nil:
			identity.Left[idx] = cell
		case isLeft:
			log.Debugf("log %d: left arm row of bilateral exercise %d, ignored", l.ID, exercise.ID)
		default:
			identity.Right[idx] = cell
		}
	}

	return identity, nil
}

// UpdateLogs writes the reps of every saved cell. Unsaved cells are skipped.
func (s *Service) UpdateLogs(ctx context.Context, identity DayLogIdentity) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.updatelogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	saved := identity.savedCells()
	if len(saved) == 0 {
		return 0, nil
	}

	updates := make([]RepsUpdate, 0, len(saved))
	for _, c := range saved {
		if c.Reps < 0 {
			return 0, fmt.Errorf("%w: log %d has negative reps %d", ErrInvalidCell, c.ID, c.Reps)
		}
		updates = append(updates, RepsUpdate{ID: c.ID, Reps: c.Reps})
	}

	updated, err := s.repo.UpdateReps(ctx, updates)
	if err != nil {
		return 0, fmt.Errorf("update reps: %w", err)
	}
	s.changed()
	return updated, nil
}

// DestroyLogs deletes the row of every saved cell. Unsaved cells are skipped.
func (s *Service) DestroyLogs(ctx context.Context, identity DayLogIdentity) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.logs.destroylogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	saved := identity.savedCells()
	if len(saved) == 0 {
		return 0, nil
	}

	ids := make([]int, 0, len(saved))
	for _, c := range saved {
		ids = append(ids, c.ID)
	}

	deleted, err := s.repo.DeleteBatch(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete logs: %w", err)
	}
	s.metricsManager.CounterLogsDeleted.Add(float64(deleted))
	s.changed()
	return deleted, nil
}
