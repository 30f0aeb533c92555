package availability

import (
	"context"
	"errors"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

// maxGenerateDays bounds a single generate request to one year of days.
const maxGenerateDays = 366

type Service struct {
	slots   SlotRepository
	studios StudioReader
}

func NewService(slots SlotRepository, studios StudioReader) *Service {
	return &Service{slots: slots, studios: studios}
}

// ListAvailableHours is the customer-facing projection: free hours for a
// studio and date, ascending. No data means an empty list, not an error.
func (s *Service) ListAvailableHours(ctx context.Context, studioID int64, date time.Time) ([]int, error) {
	return s.slots.ListAvailableHours(ctx, studioID, date)
}

// ListAvailableDates feeds the date-picker: dates with at least one free
// hour.
func (s *Service) ListAvailableDates(ctx context.Context, studioID int64) ([]time.Time, error) {
	return s.slots.ListAvailableDates(ctx, studioID)
}

// GenerateRange builds the studio's hour grid for every day in the range
// using its operational hours. This is the only place operational hours
// are enforced; slots already present keep their state, so re-generating
// never re-opens an hour the owner closed.
func (s *Service) GenerateRange(ctx context.Context, studioID int64, from, to time.Time, actor domain.Actor) ([]domain.AvailabilityDay, error) {
	from = domain.NormalizeDate(from)
	to = domain.NormalizeDate(to)

	if to.Before(from) {
		return nil, ErrValidation
	}
	if int(to.Sub(from).Hours()/24)+1 > maxGenerateDays {
		return nil, ErrValidation
	}

	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !domain.CanManageStudio(actor, studio.OwnerID) {
		return nil, ErrForbidden
	}

	return s.slots.GenerateRange(ctx, studioID, from, to, studio.OpenHour, studio.CloseHour)
}

// ToggleSlot flips one hour's availability and returns the new state.
func (s *Service) ToggleSlot(ctx context.Context, studioID int64, date time.Time, hour int, actor domain.Actor) (bool, error) {
	if hour < 0 || hour > 23 {
		return false, ErrValidation
	}
	date = domain.NormalizeDate(date)

	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	if !domain.CanManageStudio(actor, studio.OwnerID) {
		return false, ErrForbidden
	}

	day, err := s.slots.GetDay(ctx, studioID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var current *domain.Slot
	for i := range day.Slots {
		if day.Slots[i].Hour == hour {
			current = &day.Slots[i]
			break
		}
	}
	if current == nil {
		return false, ErrNotFound
	}

	next := !current.IsAvailable
	if err := s.slots.SetSlotAvailability(ctx, studioID, date, hour, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return next, nil
}
