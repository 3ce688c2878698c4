package logs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SetsPerExercise is the number of sets (setNum 1..4) logged per exercise and day.
const SetsPerExercise = 4

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrEmptyDraft  = errors.New("draft has no exercises")
	ErrInvalidCell = errors.New("invalid draft cell")

	// ErrSessionExists means the exercise was already logged that day; edit the day's logs instead.
	ErrSessionExists = errors.New("session already logged for this day")
)

// Log is one recorded set. IsLeft is nil for bilateral exercises; Reps is nil
// only for rows written by older clients.
type Log struct {
	ID         int       `json:"id"`
	ExerciseID int       `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	SetNum     int       `json:"setNum"`
	IsLeft     *bool     `json:"isLeft"`
	Reps       *int      `json:"reps"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DraftCell is one pending rep value of a draft. The zero value is an empty
// cell, which means the set was skipped; an entered 0 is not empty.
type DraftCell struct {
	reps    int
	entered bool
}

func Reps(n int) DraftCell {
	return DraftCell{reps: n, entered: true}
}

func (c DraftCell) Entered() bool {
	return c.entered
}

func (c DraftCell) Reps() int {
	return c.reps
}

func (c DraftCell) MarshalJSON() ([]byte, error) {
	if !c.entered {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(c.reps)), nil
}

// UnmarshalJSON accepts "", null, a number or a numeric string.
func (c *DraftCell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = DraftCell{}
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = DraftCell{}
			return nil
		}
	}

	reps, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w [%s]", ErrInvalidCell, raw)
	}
	if reps < 0 {
		return fmt.Errorf("%w: negative reps %d", ErrInvalidCell, reps)
	}
	*c = Reps(reps)
	return nil
}

// DraftEntry holds the pending sets of one exercise. Bilateral exercises only use Right.
type DraftEntry struct {
	Left  [SetsPerExercise]DraftCell `json:"left"`
	Right [SetsPerExercise]DraftCell `json:"right"`
}

// Draft is the unsaved working set of a logging session, keyed by exercise id.
type Draft map[int]DraftEntry

// SetCell is one set of a fetched day log: either Unsaved or Saved.
type SetCell interface {
	RepsValue() int
	isSetCell()
}

// Unsaved is a set with no row behind it; it can be neither updated nor deleted.
type Unsaved struct {
	Reps int
}

// Saved is a set backed by the log row ID.
type Saved struct {
	ID   int
	Reps int
}

func (c Unsaved) RepsValue() int { return c.Reps }
func (c Saved) RepsValue() int   { return c.Reps }
func (Unsaved) isSetCell()       {}
func (Saved) isSetCell()         {}

type setCellJSON struct {
	ID   *int `json:"id"`
	Reps int  `json:"reps"`
}

func cellsToJSON(cells []SetCell) []setCellJSON {
	if cells == nil {
		return nil
	}
	out := make([]setCellJSON, len(cells))
	for i, cell := range cells {
		switch c := cell.(type) {
		case Saved:
			id := c.ID
			out[i] = setCellJSON{ID: &id, Reps: c.Reps}
		case Unsaved:
			out[i] = setCellJSON{Reps: c.Reps}
		default:
			out[i] = setCellJSON{}
		}
	}
	return out
}

func cellsFromJSON(in []setCellJSON) []SetCell {
	if in == nil {
		return nil
	}
	cells := make([]SetCell, len(in))
	for i, c := range in {
		if c.ID != nil {
			cells[i] = Saved{ID: *c.ID, Reps: c.Reps}
		} else {
			cells[i] = Unsaved{Reps: c.Reps}
		}
	}
	return cells
}

// DayLogIdentity is the id-addressable form of one exercise's sets on one day.
// One-arm exercises fill Left and Right; bilateral exercises only Right, with Left nil.
type DayLogIdentity struct {
	ExerciseID int
	Date       string
	Weight     float64
	Left       []SetCell
	Right      []SetCell
}

type dayLogIdentityJSON struct {
	ExerciseID int           `json:"exerciseId"`
	Date       string        `json:"date"`
	Weight     float64       `json:"weight"`
	Left       []setCellJSON `json:"left"`
	Right      []setCellJSON `json:"right"`
}

func (d DayLogIdentity) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayLogIdentityJSON{
		ExerciseID: d.ExerciseID,
		Date:       d.Date,
		Weight:     d.Weight,
		Left:       cellsToJSON(d.Left),
		Right:      cellsToJSON(d.Right),
	})
}

func (d *DayLogIdentity) UnmarshalJSON(data []byte) error {
	var raw dayLogIdentityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = DayLogIdentity{
		ExerciseID: raw.ExerciseID,
		Date:       raw.Date,
		Weight:     raw.Weight,
		Left:       cellsFromJSON(raw.Left),
		Right:      cellsFromJSON(raw.Right),
	}
	return nil
}

// savedCells returns every Saved cell of the identity, both arms.
func (d *DayLogIdentity) savedCells() []Saved {
	saved := make([]Saved, 0, 2*SetsPerExercise)
	for _, cells := range [][]SetCell{d.Left, d.Right} {
		for _, cell := range cells {
			if c, ok := cell.(Saved); ok {
				saved = append(saved, c)
			}
		}
	}
	return saved
}

func unsavedCells() []SetCell {
	cells := make([]SetCell, SetsPerExercise)
	for i := range cells {
		cells[i] = Unsaved{}
	}
	return cells
}

type LoggedWeek struct {
	Display   string `json:"display"`
	StartDate string `json:"startDate"`
}

type LoggedDay struct {
	Display string `json:"display"`
	Date    string `json:"date"`
}

// WeightBump is a working weight change applied together with a session's logs.
type WeightBump struct {
	ExerciseID int     `json:"exerciseId"`
	From       float64 `json:"from"`
	To         float64 `json:"to"`
}

type RepsUpdate struct {
	ID   int
	Reps int
}
