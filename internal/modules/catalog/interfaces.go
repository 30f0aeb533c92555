package catalog

import (
	"context"

	"studiobooking/internal/domain"
	"studiobooking/internal/repository"
)

type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	GetApproved(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error)
	Create(ctx context.Context, studio *domain.Studio) error
	Update(ctx context.Context, studio *domain.Studio) error
	UpdateStatus(ctx context.Context, id int64, status domain.ApprovalStatus) error
	ReplacePackages(ctx context.Context, studioID int64, packages []domain.Package) error
	ReplaceAddons(ctx context.Context, studioID int64, addons []domain.Addon) error
	DeleteCascade(ctx context.Context, studioID int64) error
}
