package domain

import "time"

// AvailabilityDay is the full hour grid for one studio on one calendar date.
// Identity is the (studio_id, date) pair with date at day granularity.
type AvailabilityDay struct {
	ID       int64     `json:"id"`
	StudioID int64     `json:"studio_id" gorm:"uniqueIndex:uq_studio_date"`
	Date     time.Time `json:"date" gorm:"uniqueIndex:uq_studio_date"`

	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:DayID"`
}

// Slot is one bookable hour of a day. Hours are unique within a day.
type Slot struct {
	ID          int64 `json:"id"`
	DayID       int64 `json:"day_id" gorm:"uniqueIndex:uq_day_hour"`
	Hour        int   `json:"hour" gorm:"uniqueIndex:uq_day_hour" validate:"gte=0,lte=23"`
	IsAvailable bool  `json:"is_available"`
}

// NormalizeDate truncates t to UTC midnight. Every date that is persisted
// or compared goes through here, otherwise two requests for the same
// calendar day can land on different rows.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
