package booking

import (
	"context"
	"time"

	"studiobooking/internal/domain"
)

// BookingRepository persists bookings together with their slot flips.
type BookingRepository interface {
	CreateWithSlots(ctx context.Context, b *domain.Booking) error
	DeleteWithRestore(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Booking, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
}

// AvailabilityReader is the read side of the slot model used by the
// pre-commit validator.
type AvailabilityReader interface {
	ListAvailableHours(ctx context.Context, studioID int64, date time.Time) ([]int, error)
}

// StudioReader is the catalog lookup this module consumes.
type StudioReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
}

// NotificationSender is invoked fire-and-forget after a successful commit
// or cancel; its errors are never propagated.
type NotificationSender interface {
	BookingCreated(ctx context.Context, ownerUserID int64, b *domain.Booking) error
	BookingCancelled(ctx context.Context, customerUserID int64, b *domain.Booking) error
}
