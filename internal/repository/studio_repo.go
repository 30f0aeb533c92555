package repository

import (
	"context"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type StudioFilters struct {
	City   string
	Limit  int
	Offset int
}

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

// GetByID fetches a studio with its packages and addons. Packages keep
// insertion order so Packages[0] stays the base package.
func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var studio domain.Studio

	err := r.db.WithContext(ctx).
		Preload("Packages", func(db *gorm.DB) *gorm.DB { return db.Order("packages.id ASC") }).
		Preload("Addons").
		First(&studio, id).Error

	if err != nil {
		return nil, err
	}

	return &studio, nil
}

// GetApproved returns approved studios with optional filters, for the
// public catalog listing.
func (r *StudioRepository) GetApproved(ctx context.Context, f StudioFilters) ([]domain.Studio, int64, error) {
	var studios []domain.Studio
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Studio{}).
		Where("status = ?", domain.StudioApproved)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	q.Count(&total)

	if f.Limit <= 0 {
		f.Limit = 20
	}

	err := q.
		Preload("Packages", func(db *gorm.DB) *gorm.DB { return db.Order("packages.id ASC") }).
		Preload("Addons").
		Limit(f.Limit).
		Offset(f.Offset).
		Order("id ASC").
		Find(&studios).Error

	return studios, total, err
}

func (r *StudioRepository) Create(ctx context.Context, studio *domain.Studio) error {
	return r.db.WithContext(ctx).Create(studio).Error
}

func (r *StudioRepository) Update(ctx context.Context, studio *domain.Studio) error {
	return r.db.WithContext(ctx).Save(studio).Error
}

func (r *StudioRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApprovalStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Studio{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePackages swaps the studio's package list in one transaction. The
// caller guarantees at least one package remains.
func (r *StudioRepository) ReplacePackages(ctx context.Context, studioID int64, packages []domain.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("studio_id = ?", studioID).Delete(&domain.Package{}).Error; err != nil {
			return err
		}
		for i := range packages {
			packages[i].ID = 0
			packages[i].StudioID = studioID
			if err := tx.Create(&packages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StudioRepository) ReplaceAddons(ctx context.Context, studioID int64, addons []domain.Addon) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("studio_id = ?", studioID).Delete(&domain.Addon{}).Error; err != nil {
			return err
		}
		for i := range addons {
			addons[i].ID = 0
			addons[i].StudioID = studioID
			if addons[i].MaxQuantity <= 0 {
				addons[i].MaxQuantity = domain.DefaultAddonMaxQuantity
			}
			if err := tx.Create(&addons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes the studio and everything it owns: bookings and
// their hour rows, the availability grid, packages and addons. One
// transaction, child tables first.
func (r *StudioRepository) DeleteCascade(ctx context.Context, studioID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM booking_hours WHERE studio_id = ?`, studioID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM bookings WHERE studio_id = ?`, studioID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM slots WHERE day_id IN (SELECT id FROM availability_days WHERE studio_id = ?)`, studioID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM availability_days WHERE studio_id = ?`, studioID).Error; err != nil {
			return err
		}
		if err := tx.Where("studio_id = ?", studioID).Delete(&domain.Addon{}).Error; err != nil {
			return err
		}
		if err := tx.Where("studio_id = ?", studioID).Delete(&domain.Package{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Studio{}, studioID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
