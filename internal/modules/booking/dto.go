package booking

type AddonRequest struct {
	Key      string `json:"key" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	StudioID      int64          `json:"studio_id" binding:"required"`
	Date          string         `json:"date" binding:"required"` // YYYY-MM-DD
	Hours         []int          `json:"hours" binding:"required"`
	PackageKey    string         `json:"package_key" binding:"required"`
	Addons        []AddonRequest `json:"addons"`
	ClientTotal   float64        `json:"client_total"`
	PaymentStatus string         `json:"payment_status"`
}
