package catalog

import (
	"context"
	"errors"

	"studiobooking/internal/domain"
	"studiobooking/internal/pkg/logger"
	"studiobooking/internal/pkg/validator"
	"studiobooking/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	studios StudioRepository
}

func NewService(studios StudioRepository) *Service {
	return &Service{studios: studios}
}

// CreateStudio registers a new studio in pending state. At least one
// package is required because the first package is the base rate every
// price quote starts from.
func (s *Service) CreateStudio(ctx context.Context, ownerID int64, req CreateStudioRequest) (*domain.Studio, error) {
	if len(req.Packages) == 0 {
		return nil, ErrValidation
	}
	if req.OpenHour < 0 || req.CloseHour > 24 || req.OpenHour >= req.CloseHour {
		return nil, ErrValidation
	}

	packages, err := buildPackages(req.Packages)
	if err != nil {
		return nil, err
	}
	addons, err := buildAddons(req.Addons)
	if err != nil {
		return nil, err
	}

	studio := &domain.Studio{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		OpenHour:    req.OpenHour,
		CloseHour:   req.CloseHour,
		Status:      domain.StudioPending,
		Packages:    packages,
		Addons:      addons,
	}

	if fieldErrs := validator.Validate(studio); fieldErrs != nil {
		logger.Log.WithField("fields", fieldErrs).Debug("studio validation failed")
		return nil, ErrValidation
	}

	if err := s.studios.Create(ctx, studio); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"studio_id": studio.ID,
		"owner_id":  ownerID,
	}).Info("studio created, awaiting approval")

	return studio, nil
}

// GetStudio returns one studio. Unapproved studios are visible only to
// their owner and admins; everyone else gets not found rather than a
// hint that the studio exists.
func (s *Service) GetStudio(ctx context.Context, id int64, actor domain.Actor) (*domain.Studio, error) {
	studio, err := s.studios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if studio.Status != domain.StudioApproved && !domain.CanManageStudio(actor, studio.OwnerID) {
		return nil, ErrNotFound
	}
	return studio, nil
}

// ListStudios returns the public catalog: approved studios only.
func (s *Service) ListStudios(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error) {
	return s.studios.GetApproved(ctx, f)
}

// UpdatePackages replaces the studio's package list. The list may never
// become empty.
func (s *Service) UpdatePackages(ctx context.Context, studioID int64, reqs []PackageRequest, actor domain.Actor) (*domain.Studio, error) {
	if len(reqs) == 0 {
		return nil, ErrValidation
	}
	packages, err := buildPackages(reqs)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, studioID, actor); err != nil {
		return nil, err
	}
	if err := s.studios.ReplacePackages(ctx, studioID, packages); err != nil {
		return nil, err
	}
	return s.studios.GetByID(ctx, studioID)
}

// UpdateAddons replaces the studio's addon list. An empty list is valid;
// a studio without addons just sells hours.
func (s *Service) UpdateAddons(ctx context.Context, studioID int64, reqs []AddonRequest, actor domain.Actor) (*domain.Studio, error) {
	addons, err := buildAddons(reqs)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, studioID, actor); err != nil {
		return nil, err
	}
	if err := s.studios.ReplaceAddons(ctx, studioID, addons); err != nil {
		return nil, err
	}
	return s.studios.GetByID(ctx, studioID)
}

// SetApproval moves a studio to approved or denied. Admin only.
func (s *Service) SetApproval(ctx context.Context, studioID int64, status domain.ApprovalStatus, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if status != domain.StudioApproved && status != domain.StudioDenied {
		return ErrValidation
	}

	if err := s.studios.UpdateStatus(ctx, studioID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"studio_id": studioID,
		"status":    status,
	}).Info("studio approval updated")
	return nil
}

// DeleteStudio removes the studio and everything hanging off it.
func (s *Service) DeleteStudio(ctx context.Context, studioID int64, actor domain.Actor) error {
	if err := s.authorize(ctx, studioID, actor); err != nil {
		return err
	}

	if err := s.studios.DeleteCascade(ctx, studioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	logger.Log.WithField("studio_id", studioID).Info("studio deleted")
	return nil
}

func (s *Service) authorize(ctx context.Context, studioID int64, actor domain.Actor) error {
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !domain.CanManageStudio(actor, studio.OwnerID) {
		return ErrForbidden
	}
	return nil
}

func buildPackages(reqs []PackageRequest) ([]domain.Package, error) {
	out := make([]domain.Package, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, p := range reqs {
		if p.Key == "" || p.PricePerHour < 0 || seen[p.Key] {
			return nil, ErrValidation
		}
		seen[p.Key] = true
		out = append(out, domain.Package{
			Key:          p.Key,
			PricePerHour: p.PricePerHour,
			Description:  p.Description,
		})
	}
	return out, nil
}

func buildAddons(reqs []AddonRequest) ([]domain.Addon, error) {
	out := make([]domain.Addon, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, a := range reqs {
		if a.Key == "" || a.Price < 0 || a.MaxQuantity < 0 || seen[a.Key] {
			return nil, ErrValidation
		}
		seen[a.Key] = true
		maxQty := a.MaxQuantity
		if maxQty == 0 {
			maxQty = domain.DefaultAddonMaxQuantity
		}
		out = append(out, domain.Addon{
			Key:         a.Key,
			Name:        a.Name,
			Price:       a.Price,
			MaxQuantity: maxQty,
		})
	}
	return out, nil
}
