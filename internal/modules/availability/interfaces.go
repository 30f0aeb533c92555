package availability

import (
	"context"
	"time"

	"studiobooking/internal/domain"
)

// SlotRepository is the persistent slot model this service projects and
// maintains.
type SlotRepository interface {
	GetDay(ctx context.Context, studioID int64, date time.Time) (*domain.AvailabilityDay, error)
	GenerateRange(ctx context.Context, studioID int64, from, to time.Time, openHour, closeHour int) ([]domain.AvailabilityDay, error)
	SetSlotAvailability(ctx context.Context, studioID int64, date time.Time, hour int, available bool) error
	ListAvailableHours(ctx context.Context, studioID int64, date time.Time) ([]int, error)
	ListAvailableDates(ctx context.Context, studioID int64) ([]time.Time, error)
}

type StudioReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}
