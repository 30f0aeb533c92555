package catalog

type PackageRequest struct {
	Key          string  `json:"key" binding:"required"`
	PricePerHour float64 `json:"price_per_hour"`
	Description  string  `json:"description"`
}

type AddonRequest struct {
	Key         string  `json:"key" binding:"required"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	MaxQuantity int     `json:"max_quantity"`
}

type CreateStudioRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	City        string           `json:"city"`
	OpenHour    int              `json:"open_hour"`
	CloseHour   int              `json:"close_hour" binding:"required"`
	Packages    []PackageRequest `json:"packages" binding:"required"`
	Addons      []AddonRequest   `json:"addons"`
}

type UpdatePackagesRequest struct {
	Packages []PackageRequest `json:"packages" binding:"required"`
}

type UpdateAddonsRequest struct {
	Addons []AddonRequest `json:"addons" binding:"required"`
}

type SetApprovalRequest struct {
	Status string `json:"status" binding:"required"` // approved | denied
}

type StudioResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	City        string  `json:"city,omitempty"`
	OpenHour    int     `json:"open_hour"`
	CloseHour   int     `json:"close_hour"`
	Status      string  `json:"status"`
	BasePrice   float64 `json:"base_price"`
}
