package dto

// SubmitAvailabilityRequest carries a user's full weekly grid. Slot keys
// follow the slot_<weekday>_<hour> naming (e.g. slot_0_12 is Monday
// 12 PM); omitted slots default to level 0. Pointer fields distinguish
// omitted values from zero values so the documented defaults apply.
type SubmitAvailabilityRequest struct {
	Slots          map[string]int `json:"slots"`
	CoryPreference *bool          `json:"cory_preference"`
	SodaPreference *bool          `json:"soda_preference"`
	AdjacentSlots  *int           `json:"adjacent_slots"`
}

// AvailabilityFormState pre-fills the signup form: one entry per grid
// cell plus the three submission-wide values.
type AvailabilityFormState struct {
	Slots          map[string]int `json:"slots"`
	CoryPreference bool           `json:"cory_preference"`
	SodaPreference bool           `json:"soda_preference"`
	AdjacentSlots  int            `json:"adjacent_slots"`
}

// AvailabilityRecord is one row of the staff availability dump.
type AvailabilityRecord struct {
	UserID                  int64  `db:"user_id" json:"user_id"`
	UserName                string `db:"user_name" json:"user_name"`
	Weekday                 int    `db:"weekday" json:"weekday"`
	Hour                    int    `db:"hour" json:"hour"`
	PreferenceLevel         int    `db:"preference_level" json:"preference_level"`
	CoryPreference          bool   `db:"cory_preference" json:"cory_preference"`
	SodaPreference          bool   `db:"soda_preference" json:"soda_preference"`
	AdjacentSlotsPreference int    `db:"adjacent_slots_preference" json:"adjacent_slots_preference"`
}

// AvailabilityListResponse is the exact wire shape consumed by the
// external room scheduler; it is deliberately not wrapped in the
// common response envelope.
type AvailabilityListResponse struct {
	Availabilities []AvailabilityRecord `json:"availabilities"`
}
