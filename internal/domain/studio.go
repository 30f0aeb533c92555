package domain

import "time"

type ApprovalStatus string

const (
	StudioPending  ApprovalStatus = "pending"
	StudioApproved ApprovalStatus = "approved"
	StudioDenied   ApprovalStatus = "denied"
)

type Studio struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	City        string         `json:"city,omitempty"`
	OpenHour    int            `json:"open_hour" validate:"gte=0,lte=23"`
	CloseHour   int            `json:"close_hour" validate:"gte=1,lte=24"`
	Status      ApprovalStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Packages []Package `json:"packages,omitempty" gorm:"foreignKey:StudioID"`
	Addons   []Addon   `json:"addons,omitempty" gorm:"foreignKey:StudioID"`
}

// BasePrice is the studio's display price: the first package's hourly rate.
// Computed instead of stored so it can never drift from the packages.
func (s *Studio) BasePrice() float64 {
	if len(s.Packages) == 0 {
		return 0
	}
	return s.Packages[0].PricePerHour
}

func (s *Studio) PackageByKey(key string) *Package {
	for i := range s.Packages {
		if s.Packages[i].Key == key {
			return &s.Packages[i]
		}
	}
	return nil
}

func (s *Studio) AddonByKey(key string) *Addon {
	for i := range s.Addons {
		if s.Addons[i].Key == key {
			return &s.Addons[i]
		}
	}
	return nil
}

type Package struct {
	ID           int64   `json:"id"`
	StudioID     int64   `json:"studio_id"`
	Key          string  `json:"key" validate:"required"`
	PricePerHour float64 `json:"price_per_hour" validate:"gte=0"`
	Description  string  `json:"description,omitempty"`
}

const DefaultAddonMaxQuantity = 10

type Addon struct {
	ID          int64   `json:"id"`
	StudioID    int64   `json:"studio_id"`
	Key         string  `json:"key" validate:"required"`
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"gte=0"`
	MaxQuantity int     `json:"max_quantity" validate:"gt=0"`
}
