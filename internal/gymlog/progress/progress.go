// Package progress rolls set logs up into weekly training volume (reps x weight)
// over a trailing window of weeks.
package progress

import (
	"slices"

	"github.com/2beens/gymlogger/internal/gymlog/calendar"
	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/logs"
)

const (
	// WindowWeeks is the number of weeks shown, ending with the current one.
	WindowWeeks = 5

	TransparentColor = "transparent"
)

// WeeklyVolume is the volume of one week. Bilateral exercises use Volume, one-arm
// exercises LeftVolume and RightVolume.
type WeeklyVolume struct {
	Volume      *float64 `json:"volume,omitempty"`
	LeftVolume  *float64 `json:"l_volume,omitempty"`
	RightVolume *float64 `json:"r_volume,omitempty"`
}

// WeeklyVolumes is keyed by week key (the Monday, YYYY-MM-DD).
type WeeklyVolumes map[string]WeeklyVolume

type WeeksAndLabels struct {
	Weeks  []string `json:"weeks"`
	Labels []string `json:"labels"`
}

type DataPoint struct {
	Label string `json:"label"`
	// Value is nil for weeks without data; a gap is never drawn as zero.
	Value         *float64 `json:"value"`
	HideDataPoint bool     `json:"hideDataPoint"`
}

// LineSegment marks the connecting line between two adjacent points as not drawn.
type LineSegment struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Color      string `json:"color"`
}

type Dataset struct {
	Data         []DataPoint   `json:"data"`
	LineSegments []LineSegment `json:"lineSegments"`
}

// Progress holds one dataset for bilateral exercises, two (left, right) for one-arm ones.
type Progress struct {
	Datasets []Dataset `json:"datasets"`
}

// qualifies reports whether a log counts towards volume.
func qualifies(l logs.Log) bool {
	return l.Reps != nil
}

// HasQualifyingLogs reports whether any of the logs would contribute volume.
func HasQualifyingLogs(exerciseLogs []logs.Log) bool {
	for _, l := range exerciseLogs {
		if qualifies(l) {
			return true
		}
	}
	return false
}

func add(dst **float64, v float64) {
	if *dst == nil {
		*dst = new(float64)
	}
	**dst += v
}

// CalculateWeeklyVolumes sums reps x weight of the logs per week. Logs without reps are ignored.
func CalculateWeeklyVolumes(exerciseLogs []logs.Log, exercise exercises.Exercise, cal *calendar.Calendar) WeeklyVolumes {
	volumes := make(WeeklyVolumes)
	for _, l := range exerciseLogs {
		if !qualifies(l) {
			continue
		}

		key := cal.WeekKey(l.CreatedAt)
		week := volumes[key]
		volume := float64(*l.Reps) * l.Weight
		if exercise.IsOneArm {
			if week.LeftVolume == nil {
				// both arms are reported once the week has any log
				week.LeftVolume, week.RightVolume = new(float64), new(float64)
			}
			if l.IsLeft != nil && *l.IsLeft {
				add(&week.LeftVolume, volume)
			} else {
				add(&week.RightVolume, volume)
			}
		} else {
			add(&week.Volume, volume)
		}
		volumes[key] = week
	}
	return volumes
}

// GenerateWeeksAndLabels returns the WindowWeeks week keys ending with the current
// week, oldest first, with their display labels.
func GenerateWeeksAndLabels(cal *calendar.Calendar) WeeksAndLabels {
	wl := WeeksAndLabels{
		Weeks:  make([]string, 0, WindowWeeks),
		Labels: make([]string, 0, WindowWeeks),
	}
	for _, weekStart := range cal.TrailingWeeks(WindowWeeks) {
		wl.Weeks = append(wl.Weeks, cal.DateKey(weekStart))
		wl.Labels = append(wl.Labels, cal.WeekLabel(weekStart))
	}
	return wl
}

// CreateDatasets maps the window onto the volumes. Weeks without data get a hidden
// point with no value, and the lines into and out of them are transparent.
func CreateDatasets(volumes WeeklyVolumes, weeks WeeksAndLabels, exercise exercises.Exercise) *Progress {
	pick := []func(WeeklyVolume) *float64{
		func(v WeeklyVolume) *float64 { return v.Volume },
	}
	if exercise.IsOneArm {
		pick = []func(WeeklyVolume) *float64{
			func(v WeeklyVolume) *float64 { return v.LeftVolume },
			func(v WeeklyVolume) *float64 { return v.RightVolume },
		}
	}

	segments := gapSegments(volumes, weeks.Weeks)

	progress := &Progress{
		Datasets: make([]Dataset, 0, len(pick)),
	}
	for _, value := range pick {
		data := make([]DataPoint, len(weeks.Weeks))
		for i, week := range weeks.Weeks {
			point := DataPoint{Label: weeks.Labels[i]}
			if v, ok := volumes[week]; ok {
				point.Value = value(v)
			} else {
				point.HideDataPoint = true
			}
			data[i] = point
		}
		progress.Datasets = append(progress.Datasets, Dataset{
			Data:         data,
			LineSegments: slices.Clone(segments),
		})
	}
	return progress
}

// gapSegments returns the transparent segments touching every missing week, each
// segment once, in index order.
func gapSegments(volumes WeeklyVolumes, weeks []string) []LineSegment {
	segments := make([]LineSegment, 0)
	missing := func(i int) bool {
		_, ok := volumes[weeks[i]]
		return !ok
	}
	for i := 0; i+1 < len(weeks); i++ {
		if missing(i) || missing(i+1) {
			segments = append(segments, LineSegment{StartIndex: i, EndIndex: i + 1, Color: TransparentColor})
		}
	}
	return segments
}
