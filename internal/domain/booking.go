package domain

import "time"

type PaymentStatus string

const (
	PaymentPayAtStudio PaymentStatus = "pay_at_studio"
	PaymentPaid        PaymentStatus = "paid"
)

type BookingAddon struct {
	Key      string `json:"key"`
	Quantity int    `json:"quantity"`
}

// Booking is immutable after creation: there is no edit path, only
// creation through the commit engine and deletion through the lifecycle
// manager.
type Booking struct {
	ID            int64          `json:"id"`
	StudioID      int64          `json:"studio_id" validate:"required"`
	CustomerID    int64          `json:"customer_id" validate:"required"`
	Date          time.Time      `json:"date" validate:"required"`
	Hours         []int          `json:"hours" validate:"required,min=1"`
	PackageKey    string         `json:"package_key" validate:"required"`
	Addons        []BookingAddon `json:"addons,omitempty"`
	TotalPrice    float64        `json:"total_price" validate:"gte=0"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
}
