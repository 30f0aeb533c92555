package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

// ErrSlotConflict is returned when a conditional slot update touched fewer
// rows than requested: some hour was already taken or never existed.
var ErrSlotConflict = errors.New("slot conflict")

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// GetDay loads the (studio, date) grid with slots ordered by hour.
func (r *AvailabilityRepository) GetDay(ctx context.Context, studioID int64, date time.Time) (*domain.AvailabilityDay, error) {
	date = domain.NormalizeDate(date)

	var day domain.AvailabilityDay
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("slots.hour ASC") }).
		Where("studio_id = ? AND date = ?", studioID, date).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// GenerateRange builds the hour grid [openHour, closeHour) for every day in
// the inclusive date range. Existing days are merged, not overwritten: a
// slot the owner closed earlier keeps its state, only missing hours are
// added.
func (r *AvailabilityRepository) GenerateRange(ctx context.Context, studioID int64, from, to time.Time, openHour, closeHour int) ([]domain.AvailabilityDay, error) {
	from = domain.NormalizeDate(from)
	to = domain.NormalizeDate(to)

	var days []domain.AvailabilityDay

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			day := domain.AvailabilityDay{StudioID: studioID, Date: d}
			if err := tx.Where("studio_id = ? AND date = ?", studioID, d).FirstOrCreate(&day).Error; err != nil {
				return err
			}

			var existing []domain.Slot
			if err := tx.Where("day_id = ?", day.ID).Find(&existing).Error; err != nil {
				return err
			}
			have := make(map[int]bool, len(existing))
			for _, s := range existing {
				have[s.Hour] = true
			}

			for h := openHour; h < closeHour; h++ {
				if have[h] {
					continue
				}
				slot := domain.Slot{DayID: day.ID, Hour: h, IsAvailable: true}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
				existing = append(existing, slot)
			}

			sort.Slice(existing, func(i, j int) bool { return existing[i].Hour < existing[j].Hour })
			day.Slots = existing
			days = append(days, day)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return days, nil
}

// SetSlotAvailability flips one hour. gorm.ErrRecordNotFound when the
// (studio, date, hour) slot row does not exist.
func (r *AvailabilityRepository) SetSlotAvailability(ctx context.Context, studioID int64, date time.Time, hour int, available bool) error {
	date = domain.NormalizeDate(date)

	res := r.db.WithContext(ctx).Exec(`
UPDATE slots SET is_available = ?
WHERE hour = ?
  AND day_id IN (SELECT id FROM availability_days WHERE studio_id = ? AND date = ?)
`, available, hour, studioID, date)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAvailableHours returns the free hours for a studio and date, sorted
// ascending. Missing studio or day yields an empty slice, not an error.
func (r *AvailabilityRepository) ListAvailableHours(ctx context.Context, studioID int64, date time.Time) ([]int, error) {
	date = domain.NormalizeDate(date)

	hours := make([]int, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT s.hour
FROM slots s
JOIN availability_days d ON d.id = s.day_id
WHERE d.studio_id = ? AND d.date = ? AND s.is_available = ?
ORDER BY s.hour ASC
`, studioID, date, true).Scan(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

// ListAvailableDates returns dates having at least one free hour, for the
// date-picker filter.
func (r *AvailabilityRepository) ListAvailableDates(ctx context.Context, studioID int64) ([]time.Time, error) {
	dates := make([]time.Time, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT DISTINCT d.date
FROM availability_days d
JOIN slots s ON s.day_id = d.id
WHERE d.studio_id = ? AND s.is_available = ?
ORDER BY d.date ASC
`, studioID, true).Scan(&dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}
