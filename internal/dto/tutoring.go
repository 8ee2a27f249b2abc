package dto

// UpsertRoomRequest creates or updates a tutoring room.
type UpsertRoomRequest struct {
	Name  string `json:"name" validate:"required,max=25"`
	Color string `json:"color" validate:"omitempty,max=25"`
}

// CreateLogisticsRequest creates the per-semester logistics record.
type CreateLogisticsRequest struct {
	SemesterID *string `json:"semester_id" validate:"omitempty,uuid"`
}

// SetTutorPoolsRequest replaces both tutor pools of a logistics record.
// The two pools must be disjoint.
type SetTutorPoolsRequest struct {
	OneHourTutorIDs []int64 `json:"one_hour_tutor_ids" validate:"dive,gt=0"`
	TwoHourTutorIDs []int64 `json:"two_hour_tutor_ids" validate:"dive,gt=0"`
}

// UpsertSlotRequest creates or updates a scheduled tutoring slot.
type UpsertSlotRequest struct {
	LogisticsID *string `json:"logistics_id" validate:"omitempty,uuid"`
	RoomID      *string `json:"room_id" validate:"omitempty,uuid"`
	NumTutors   int     `json:"num_tutors" validate:"min=0"`
	Weekday     int     `json:"weekday" validate:"min=0,max=6"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	TutorIDs    []int64 `json:"tutor_ids" validate:"dive,gt=0"`
}

// SlotListing is one entry of the public slot listing.
type SlotListing struct {
	ID          string  `db:"id" json:"id"`
	Weekday     int     `db:"weekday" json:"weekday"`
	WeekdayName string  `db:"-" json:"weekday_name"`
	StartTime   string  `db:"start_time" json:"start_time"`
	NumTutors   int     `db:"num_tutors" json:"num_tutors"`
	RoomName    *string `db:"room_name" json:"room_name,omitempty"`
	RoomColor   *string `db:"room_color" json:"room_color,omitempty"`
	TutorNames  string  `db:"tutor_names" json:"tutor_names"`
}

// TutorOption is a tutor autocomplete entry.
type TutorOption struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CourseOption is a course autocomplete entry.
type CourseOption struct {
	ID    string `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}
