package model

import (
	"github.com/google/uuid"
)

// WeeklyHours is one weekday row of a recurring schedule. Clinic-wide rows
// carry a nil VeterinarianID; per-veterinarian overrides set it.
type WeeklyHours struct {
	Base
	ClinicID       uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	VeterinarianID *uuid.UUID `db:"veterinarian_id" json:"veterinarian_id,omitempty"`
	DayOfWeek      int        `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	IsOpen         bool       `db:"is_open" json:"is_open"`
	Is24H          bool       `db:"is_24h" json:"is_24h"`
	OpenTime       *string    `db:"open_time" json:"open_time,omitempty"`   // "HH:MM"
	CloseTime      *string    `db:"close_time" json:"close_time,omitempty"` // "HH:MM"
	BreakStart     *string    `db:"break_start" json:"break_start,omitempty"`
	BreakEnd       *string    `db:"break_end" json:"break_end,omitempty"`
}

// ClosedDate is a one-off exception that overrides the weekly schedule to
// fully closed. A nil VeterinarianID applies to the whole clinic.
type ClosedDate struct {
	Base
	ClinicID       uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	VeterinarianID *uuid.UUID `db:"veterinarian_id" json:"veterinarian_id,omitempty"`
	Date           string     `db:"closed_on" json:"date"` // "2006-01-02"
	Reason         string     `db:"reason" json:"reason,omitempty"`
}

type WeeklyHoursEntry struct {
	DayOfWeek  int     `json:"day_of_week" binding:"min=0,max=6"`
	IsOpen     bool    `json:"is_open"`
	Is24H      bool    `json:"is_24h"`
	OpenTime   *string `json:"open_time" binding:"omitempty,hhmm"`
	CloseTime  *string `json:"close_time" binding:"omitempty,hhmm"`
	BreakStart *string `json:"break_start" binding:"omitempty,hhmm"`
	BreakEnd   *string `json:"break_end" binding:"omitempty,hhmm"`
}

// SaveWeeklyHoursRequest carries a full week of hours; saves are
// all-or-nothing after validation. ApplyAllFrom copies that weekday's values
// over the whole week before validation (the editor's "apply to all days").
type SaveWeeklyHoursRequest struct {
	VeterinarianID *string            `json:"veterinarian_id" binding:"omitempty,uuid"`
	Days           []WeeklyHoursEntry `json:"days" binding:"required,len=7,dive"`
	ApplyAllFrom   *int               `json:"apply_all_from" binding:"omitempty,min=0,max=6"`
}

type CreateClosedDateRequest struct {
	VeterinarianID *string `json:"veterinarian_id" binding:"omitempty,uuid"`
	Date           string  `json:"date" binding:"required,datetime=2006-01-02"`
	Reason         string  `json:"reason" binding:"max=200"`
}

// DaySlots is a day's bookable grid. Closed is set for a non-working day so
// callers can distinguish it from a fully booked one.
type DaySlots struct {
	Date   string   `json:"date"`
	Closed bool     `json:"closed"`
	Slots  []string `json:"slots"`
}
