package notification

import (
	"context"

	"studiobooking/internal/domain"
	"studiobooking/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Sender delivers booking events to the interested party. The log
// implementation stands in for email or push delivery; callers treat
// every send as best effort.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) BookingCreated(ctx context.Context, ownerUserID int64, b *domain.Booking) error {
	logger.Log.WithFields(logrus.Fields{
		"event":      "booking_created",
		"owner_id":   ownerUserID,
		"booking_id": b.ID,
		"studio_id":  b.StudioID,
		"date":       b.Date.Format("2006-01-02"),
		"hours":      b.Hours,
	}).Info("notify studio owner")
	return nil
}

func (s *Sender) BookingCancelled(ctx context.Context, customerUserID int64, b *domain.Booking) error {
	logger.Log.WithFields(logrus.Fields{
		"event":       "booking_cancelled",
		"customer_id": customerUserID,
		"booking_id":  b.ID,
		"studio_id":   b.StudioID,
		"date":        b.Date.Format("2006-01-02"),
	}).Info("notify customer")
	return nil
}
