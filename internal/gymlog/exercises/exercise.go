package exercises

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SlotsPerDay is the number of exercise slots (orderNum 1..4) of a training day.
	SlotsPerDay = 4
	DaysInWeek  = 7
	// Saturday and Sunday (ids 5, 6) are fixed rest days.
	FirstRestDayID = 5
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrSlotTaken        = errors.New("slot already taken")
	ErrValidation       = errors.New("invalid exercise")
)

type Day struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Exercise struct {
	ID        int     `json:"id"`
	DayID     int     `json:"dayId"`
	Name      string  `json:"name"`
	IsOneArm  bool    `json:"isOneArm"`
	Weight    float64 `json:"weight"`
	Increment float64 `json:"increment"`
	OrderNum  int     `json:"orderNum"`
}

// Slots holds the exercises of one day by slot position (orderNum-1); empty slots are nil.
type Slots [SlotsPerDay]*Exercise

// NewSlots places the exercises into their slots, ignoring any with an orderNum out of range.
func NewSlots(exercises []Exercise) Slots {
	var slots Slots
	for i := range exercises {
		pos := exercises[i].OrderNum - 1
		if pos < 0 || pos >= SlotsPerDay {
			continue
		}
		ex := exercises[i]
		slots[pos] = &ex
	}
	return slots
}

func IsFixedRestDay(dayID int) bool {
	return dayID >= FirstRestDayID && dayID < DaysInWeek
}

func ValidSlot(orderNum int) bool {
	return orderNum >= 1 && orderNum <= SlotsPerDay
}

// Validate checks the fields required before an exercise can be written.
func (e *Exercise) Validate() error {
	e.Name = strings.TrimSpace(e.Name)
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case e.Weight < 0:
		return fmt.Errorf("%w: weight must not be negative", ErrValidation)
	case e.Increment < 0:
		return fmt.Errorf("%w: increment must not be negative", ErrValidation)
	case !ValidSlot(e.OrderNum):
		return fmt.Errorf("%w: slot %d outside 1..%d", ErrValidation, e.OrderNum, SlotsPerDay)
	case e.DayID < 0 || e.DayID >= DaysInWeek:
		return fmt.Errorf("%w: %d", ErrDayNotFound, e.DayID)
	case IsFixedRestDay(e.DayID):
		return fmt.Errorf("%w: day %d is a rest day", ErrValidation, e.DayID)
	}
	return nil
}
