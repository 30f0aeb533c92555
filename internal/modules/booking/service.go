package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/pkg/keylock"
	"studiobooking/internal/pkg/logger"
	"studiobooking/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CreateBookingInput is the validated-by-handler shape the service prices
// and commits. CustomerID comes from the auth context, never the body.
type CreateBookingInput struct {
	StudioID      int64
	CustomerID    int64
	Date          time.Time
	Hours         []int
	PackageKey    string
	Addons        []domain.BookingAddon
	ClientTotal   float64
	PaymentStatus domain.PaymentStatus
}

type Service struct {
	bookings     BookingRepository
	availability AvailabilityReader
	studios      StudioReader
	notifs       NotificationSender
	locks        *keylock.KeyLock
}

func NewService(
	bookings BookingRepository,
	availability AvailabilityReader,
	studios StudioReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:     bookings,
		availability: availability,
		studios:      studios,
		notifs:       notifs,
		locks:        keylock.New(),
	}
}

// CreateBooking validates the request against the live slot model, prices
// it server-side and commits atomically. On success every requested hour
// is closed and exactly one booking row references them.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	in.Date = domain.NormalizeDate(in.Date)

	if err := validateHours(in.Hours); err != nil {
		return nil, err
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = domain.PaymentPayAtStudio
	}
	if in.PaymentStatus != domain.PaymentPayAtStudio && in.PaymentStatus != domain.PaymentPaid {
		return nil, ErrValidation
	}

	studio, err := s.studios.GetByID(ctx, in.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	if studio.Status != domain.StudioApproved {
		return nil, ErrStudioNotApproved
	}

	pkg := studio.PackageByKey(in.PackageKey)
	if pkg == nil {
		return nil, ErrInvalidPackage
	}

	for _, a := range in.Addons {
		addon := studio.AddonByKey(a.Key)
		if addon == nil {
			return nil, ErrInvalidAddon
		}
		if a.Quantity < 1 || a.Quantity > addon.MaxQuantity {
			return nil, ErrInvalidAddon
		}
	}

	// Pre-commit availability check. The commit re-runs the same condition
	// inside the transaction, so a race between here and there surfaces as
	// ErrConflict, never as a double booking.
	if unavailable, err := s.unavailableHours(ctx, in.StudioID, in.Date, in.Hours); err != nil {
		return nil, err
	} else if len(unavailable) > 0 {
		return nil, &SlotUnavailableError{Hours: unavailable}
	}

	total := pkg.PricePerHour * float64(len(in.Hours))
	for _, a := range in.Addons {
		addon := studio.AddonByKey(a.Key)
		total += addon.Price * float64(a.Quantity)
	}
	total = math.Round(total*100) / 100

	// Client totals are an acknowledgement only, never the charged amount.
	if in.ClientTotal != 0 && in.ClientTotal != total {
		logger.Log.Warnf("client total %.2f differs from server total %.2f (studio=%d)",
			in.ClientTotal, total, in.StudioID)
	}

	b := &domain.Booking{
		StudioID:      in.StudioID,
		CustomerID:    in.CustomerID,
		Date:          in.Date,
		Hours:         in.Hours,
		PackageKey:    in.PackageKey,
		Addons:        in.Addons,
		TotalPrice:    total,
		PaymentStatus: in.PaymentStatus,
	}

	if err := s.commit(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.BookingCreated(context.WithoutCancel(ctx), studio.OwnerID, b)
	}

	return b, nil
}

// commit serializes per (studio, date) and runs to completion even if the
// client disconnects: a half-committed reservation must never be left
// behind. Transient store errors get one internal retry; losing the race
// does not, that is the caller's answer.
func (s *Service) commit(ctx context.Context, b *domain.Booking) error {
	ctx = context.WithoutCancel(ctx)

	key := lockKey(b.StudioID, b.Date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	err := s.bookings.CreateWithSlots(ctx, b)
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return ErrConflict
	}

	logger.Log.Warnf("booking commit failed, retrying once: %v", err)
	err = s.bookings.CreateWithSlots(ctx, b)
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return ErrConflict
	}
	logger.Log.Errorf("booking commit failed after retry: %v", err)
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// DeleteBooking restores the booking's hours and removes the record, both
// in one transaction. Only the studio owner or an admin may do this.
func (s *Service) DeleteBooking(ctx context.Context, bookingID int64, actor domain.Actor) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	studio, err := s.studios.GetByID(ctx, b.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !domain.CanManageBooking(actor, studio.OwnerID) {
		return ErrForbidden
	}

	ctx = context.WithoutCancel(ctx)

	key := lockKey(b.StudioID, b.Date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	if err := s.bookings.DeleteWithRestore(ctx, bookingID); err != nil {
		logger.Log.Warnf("booking delete failed, retrying once: %v", err)
		if err := s.bookings.DeleteWithRestore(ctx, bookingID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if s.notifs != nil {
		_ = s.notifs.BookingCancelled(ctx, b.CustomerID, b)
	}

	return nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return s.bookings.GetByCustomerID(ctx, customerID)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return s.bookings.GetByOwnerID(ctx, ownerID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) unavailableHours(ctx context.Context, studioID int64, date time.Time, hours []int) ([]int, error) {
	free, err := s.availability.ListAvailableHours(ctx, studioID, date)
	if err != nil {
		return nil, err
	}
	freeSet := make(map[int]bool, len(free))
	for _, h := range free {
		freeSet[h] = true
	}

	var unavailable []int
	for _, h := range hours {
		if !freeSet[h] {
			unavailable = append(unavailable, h)
		}
	}
	return unavailable, nil
}

func validateHours(hours []int) error {
	if len(hours) == 0 {
		return ErrValidation
	}
	seen := make(map[int]bool, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			return ErrValidation
		}
		if seen[h] {
			return ErrValidation
		}
		seen[h] = true
	}
	return nil
}

func lockKey(studioID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", studioID, date.Format("2006-01-02"))
}

// isConflict recognizes the three faces of a lost race: the repository's
// conditional-update check, a Postgres unique violation on the
// no-overbooking index, and SQLite's equivalent constraint message.
func isConflict(err error) bool {
	if errors.Is(err, repository.ErrSlotConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "uq_no_overbooking")
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: booking_hours")
}
