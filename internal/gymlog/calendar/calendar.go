// Package calendar is the single date convention of the gym log: every timestamp
// is normalized into one location before it is bucketed into days and
// Monday-start weeks.
package calendar

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// TrainingDays is the number of trainable weekdays (Mon..Fri).
const TrainingDays = 5

type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{
		loc: loc,
		now: now,
	}
}

// UTC returns the default calendar: UTC, wall clock.
func UTC() *Calendar {
	return New(time.UTC, time.Now)
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now is the current instant in the calendar location, truncated to microseconds
// (the precision postgres keeps).
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc).Truncate(time.Microsecond)
}

func (c *Calendar) In(t time.Time) time.Time {
	return t.In(c.loc)
}

// DayStart returns midnight of t's day.
func (c *Calendar) DayStart(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// Weekday returns the day index used by the schedule: Monday=0 .. Sunday=6.
func (c *Calendar) Weekday(t time.Time) int {
	return (int(t.In(c.loc).Weekday()) + 6) % 7
}

// WeekStart returns midnight of the Monday on or before t.
func (c *Calendar) WeekStart(t time.Time) time.Time {
	day := c.DayStart(t)
	return day.AddDate(0, 0, -c.Weekday(day))
}

func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// WeekKey is the Monday date of t's week, as YYYY-MM-DD.
func (c *Calendar) WeekKey(t time.Time) string {
	return c.DateKey(c.WeekStart(t))
}

// ParseDate parses a YYYY-MM-DD key into midnight of that day in the calendar location.
func (c *Calendar) ParseDate(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date [%s]: %w", key, err)
	}
	return t, nil
}

// DayRange returns [start, end) covering the day of t.
func (c *Calendar) DayRange(t time.Time) (time.Time, time.Time) {
	start := c.DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

// TrainingWeekRange returns [Monday, Saturday) of the week starting at weekStart.
func (c *Calendar) TrainingWeekRange(weekStart time.Time) (time.Time, time.Time) {
	start := c.DayStart(weekStart)
	return start, start.AddDate(0, 0, TrainingDays)
}

// WeekOfMonth numbers weeks within the month: ceil((dayOfMonth + firstWeekdayOffset - 1) / 7),
// where firstWeekdayOffset is the weekday of the 1st, Monday=1 .. Sunday=7.
func (c *Calendar) WeekOfMonth(t time.Time) int {
	t = t.In(c.loc)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
	firstWeekdayOffset := c.Weekday(first) + 1
	return int(math.Ceil(float64(t.Day()+firstWeekdayOffset-1) / 7))
}

// WeekLabel renders the display label of the week starting at weekStart, e.g. "Mar W2 2025".
func (c *Calendar) WeekLabel(weekStart time.Time) string {
	weekStart = weekStart.In(c.loc)
	return fmt.Sprintf("%s W%d %d", weekStart.Format("Jan"), c.WeekOfMonth(weekStart), weekStart.Year())
}

// TrailingWeeks returns the Monday starts of the last n weeks, oldest first,
// ending with the current week.
func (c *Calendar) TrailingWeeks(n int) []time.Time {
	latest := c.WeekStart(c.Now())
	weeks := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		weeks = append(weeks, latest.AddDate(0, 0, -7*i))
	}
	return weeks
}
