package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	StudioID      int64     `gorm:"column:studio_id;index"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	Date          time.Time `gorm:"column:date"`
	Hours         string    `gorm:"column:hours"`
	PackageKey    string    `gorm:"column:package_key"`
	Addons        string    `gorm:"column:addons"`
	TotalPrice    float64   `gorm:"column:total_price"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// bookingHourModel gives every booked hour its own row so the unique index
// makes double-booking impossible at the store level, whatever the
// application does.
type bookingHourModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	StudioID  int64     `gorm:"column:studio_id;uniqueIndex:uq_no_overbooking"`
	Date      time.Time `gorm:"column:date;uniqueIndex:uq_no_overbooking"`
	Hour      int       `gorm:"column:hour;uniqueIndex:uq_no_overbooking"`
}

func (bookingHourModel) TableName() string { return "booking_hours" }

func toDomainBooking(m bookingModel) (*domain.Booking, error) {
	var hours []int
	if err := json.Unmarshal([]byte(m.Hours), &hours); err != nil {
		return nil, err
	}
	var addons []domain.BookingAddon
	if m.Addons != "" {
		if err := json.Unmarshal([]byte(m.Addons), &addons); err != nil {
			return nil, err
		}
	}

	return &domain.Booking{
		ID:            m.ID,
		StudioID:      m.StudioID,
		CustomerID:    m.CustomerID,
		Date:          m.Date,
		Hours:         hours,
		PackageKey:    m.PackageKey,
		Addons:        addons,
		TotalPrice:    m.TotalPrice,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
	}, nil
}

func toBookingModel(b *domain.Booking) (bookingModel, error) {
	hours, err := json.Marshal(b.Hours)
	if err != nil {
		return bookingModel{}, err
	}
	var addons []byte
	if len(b.Addons) > 0 {
		addons, err = json.Marshal(b.Addons)
		if err != nil {
			return bookingModel{}, err
		}
	}

	return bookingModel{
		ID:            b.ID,
		StudioID:      b.StudioID,
		CustomerID:    b.CustomerID,
		Date:          b.Date,
		Hours:         string(hours),
		PackageKey:    b.PackageKey,
		Addons:        string(addons),
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
	}, nil
}

// CreateWithSlots is the commit: inside one transaction it re-checks and
// flips every requested slot with a conditional UPDATE, then writes the
// booking and its hour rows. If any hour was lost since validation the
// conditional UPDATE touches fewer rows than requested, the transaction
// rolls back and ErrSlotConflict comes out. Slot flips and the booking row
// become visible together or not at all.
func (r *BookingRepository) CreateWithSlots(ctx context.Context, b *domain.Booking) error {
	b.Date = domain.NormalizeDate(b.Date)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var day domain.AvailabilityDay
		if err := tx.Where("studio_id = ? AND date = ?", b.StudioID, b.Date).First(&day).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotConflict
			}
			return err
		}

		res := tx.Model(&domain.Slot{}).
			Where("day_id = ? AND hour IN ? AND is_available = ?", day.ID, b.Hours, true).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(b.Hours)) {
			return ErrSlotConflict
		}

		m, err := toBookingModel(b)
		if err != nil {
			return err
		}
		m.CreatedAt = time.Now()
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for _, h := range b.Hours {
			row := bookingHourModel{
				BookingID: m.ID,
				StudioID:  b.StudioID,
				Date:      b.Date,
				Hour:      h,
			}
			if err := tx.Create(&row).Error; err != nil {
				// Unique violation on uq_no_overbooking: another booking
				// holds this hour. The service maps driver errors too.
				return err
			}
		}

		b.ID = m.ID
		b.CreatedAt = m.CreatedAt
		return nil
	})
}

// DeleteWithRestore removes the booking and re-opens its hours in the same
// transaction. The restore UPDATE is idempotent, so a slot the owner
// already toggled open stays open. If the restore fails the booking row
// survives: a stale booking is recoverable, a silently freed double-booked
// slot is not.
func (r *BookingRepository) DeleteWithRestore(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		b, err := toDomainBooking(m)
		if err != nil {
			return err
		}

		if err := tx.Exec(`
UPDATE slots SET is_available = ?
WHERE hour IN ?
  AND day_id IN (SELECT id FROM availability_days WHERE studio_id = ? AND date = ?)
`, true, b.Hours, b.StudioID, b.Date).Error; err != nil {
			return err
		}

		if err := tx.Where("booking_id = ?", id).Delete(&bookingHourModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bookingModel{}, id).Error
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m)
}

func (r *BookingRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models)
}

// GetByOwnerID returns every booking across the owner's studios.
func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).Raw(`
SELECT b.*
FROM bookings b
JOIN studios st ON st.id = b.studio_id
WHERE st.owner_id = ?
ORDER BY b.created_at DESC
`, ownerID).Scan(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models)
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models)
}

// CountByHour reports how many bookings hold a given studio/date/hour.
// The no-overbooking invariant keeps this at 0 or 1.
func (r *BookingRepository) CountByHour(ctx context.Context, studioID int64, date time.Time, hour int) (int64, error) {
	date = domain.NormalizeDate(date)
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingHourModel{}).
		Where("studio_id = ? AND date = ? AND hour = ?", studioID, date, hour).
		Count(&cnt).Error
	return cnt, err
}

func toDomainBookings(models []bookingModel) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		b, err := toDomainBooking(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}
