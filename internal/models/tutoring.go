package models

import (
	"fmt"
	"time"
)

// WeekdayNames maps weekday indexes (0 = Monday) to display names.
var WeekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Availability grid dimensions. Preferences are collected Monday through
// Friday for the 12 PM to 4 PM sessions only.
var (
	AvailabilityWeekdays = []int{0, 1, 2, 3, 4}
	AvailabilityHours    = []int{12, 13, 14, 15, 16}
)

// Preference levels for a single slot.
const (
	PreferenceCannotMake    = 0
	PreferenceLessPreferred = 1
	PreferenceCanMake       = 2
	PreferencePreferred     = 3
)

// PreferenceLevelLabels maps preference levels to display text.
var PreferenceLevelLabels = map[int]string{
	PreferenceCannotMake:    "Cannot make it",
	PreferenceLessPreferred: "Less preferred but can make it",
	PreferenceCanMake:       "Can make it",
	PreferencePreferred:     "Preferred",
}

// Adjacent-slot preference values.
const (
	AdjacentDontCare  = -1
	AdjacentPreferNot = 0
	AdjacentPrefer    = 1
)

// ValidPreferenceLevel reports whether level is within the 0-3 scale.
func ValidPreferenceLevel(level int) bool {
	return level >= PreferenceCannotMake && level <= PreferencePreferred
}

// ValidAdjacency reports whether value is one of -1, 0, 1.
func ValidAdjacency(value int) bool {
	return value >= AdjacentDontCare && value <= AdjacentPrefer
}

// SlotKey identifies one cell of the weekly availability grid together
// with its stable submission field name (slot_<weekday>_<hour>).
type SlotKey struct {
	Weekday int
	Hour    int
	Field   string
}

// SlotKeys is the fixed, ordered schema of the 25 availability grid
// cells, built once at package initialisation. Ordering matches the
// storage ordering: weekday ascending, then hour ascending.
var SlotKeys = buildSlotKeys()

// SlotKeyByField indexes SlotKeys by submission field name.
var SlotKeyByField = func() map[string]SlotKey {
	index := make(map[string]SlotKey, len(SlotKeys))
	for _, key := range SlotKeys {
		index[key.Field] = key
	}
	return index
}()

func buildSlotKeys() []SlotKey {
	keys := make([]SlotKey, 0, len(AvailabilityWeekdays)*len(AvailabilityHours))
	for _, weekday := range AvailabilityWeekdays {
		for _, hour := range AvailabilityHours {
			keys = append(keys, SlotKey{
				Weekday: weekday,
				Hour:    hour,
				Field:   fmt.Sprintf("slot_%d_%d", weekday, hour),
			})
		}
	}
	return keys
}

// Room is a physical tutoring location.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultRoomColor is applied when a room is created without a color.
const DefaultRoomColor = "DarkGray"

// TutoringLogistics is the per-semester container of tutor shift pools.
type TutoringLogistics struct {
	ID         string    `db:"id" json:"id"`
	SemesterID *string   `db:"semester_id" json:"semester_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	// Tutor pools are loaded from join tables, not columns.
	OneHourTutorIDs []int64 `db:"-" json:"one_hour_tutor_ids"`
	TwoHourTutorIDs []int64 `db:"-" json:"two_hour_tutor_ids"`
}

// TutorShift distinguishes the two logistics tutor pools.
type TutorShift string

const (
	ShiftOneHour TutorShift = "ONE_HOUR"
	ShiftTwoHour TutorShift = "TWO_HOUR"
)

// Slot is a concrete scheduled tutoring session. It is written by staff
// constructing the room schedule, never by the availability submission
// flow.
type Slot struct {
	ID          string    `db:"id" json:"id"`
	LogisticsID *string   `db:"logistics_id" json:"logistics_id,omitempty"`
	RoomID      *string   `db:"room_id" json:"room_id,omitempty"`
	NumTutors   int       `db:"num_tutors" json:"num_tutors"`
	Weekday     int       `db:"weekday" json:"weekday"`
	StartTime   string    `db:"start_time" json:"start_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	TutorIDs []int64 `db:"-" json:"tutor_ids"`
}

// TutoringAvailability is one row of a user's submitted weekly grid:
// the preference for a single (weekday, hour) cell. The building
// preferences and the adjacency preference belong to the submission as
// a whole and are denormalised onto every row of it.
type TutoringAvailability struct {
	ID                      string    `db:"id" json:"id"`
	UserID                  int64     `db:"user_id" json:"user_id"`
	SemesterID              *string   `db:"semester_id" json:"semester_id,omitempty"`
	Weekday                 int       `db:"weekday" json:"weekday"`
	Hour                    int       `db:"hour" json:"hour"`
	PreferenceLevel         int       `db:"preference_level" json:"preference_level"`
	CoryPreference          bool      `db:"cory_preference" json:"cory_preference"`
	SodaPreference          bool      `db:"soda_preference" json:"soda_preference"`
	AdjacentSlotsPreference int       `db:"adjacent_slots_preference" json:"adjacent_slots_preference"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time `db:"updated_at" json:"updated_at"`
}
