package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/middleware"
	"studiobooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to already carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my", h.ListMyBookings)
	rg.GET("/bookings/owner", h.ListOwnerBookings)
	rg.GET("/bookings", middleware.AdminOnly(), h.ListAllBookings)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	addons := make([]domain.BookingAddon, 0, len(req.Addons))
	for _, a := range req.Addons {
		addons = append(addons, domain.BookingAddon{Key: a.Key, Quantity: a.Quantity})
	}

	b, err := h.service.CreateBooking(c.Request.Context(), CreateBookingInput{
		StudioID:      req.StudioID,
		CustomerID:    c.GetInt64("user_id"),
		Date:          date,
		Hours:         req.Hours,
		PackageKey:    req.PackageKey,
		Addons:        addons,
		ClientTotal:   req.ClientTotal,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) writeCreateError(c *gin.Context, err error) {
	var slotErr *SlotUnavailableError

	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrStudioNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
	case errors.Is(err, ErrStudioNotApproved):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Studio is not approved for booking")
	case errors.Is(err, ErrInvalidPackage):
		response.Error(c, http.StatusBadRequest, "INVALID_PACKAGE", "Unknown package for this studio")
	case errors.Is(err, ErrInvalidAddon):
		response.Error(c, http.StatusBadRequest, "INVALID_ADDON", "Unknown addon or quantity out of bounds")
	case errors.As(err, &slotErr):
		response.ErrorWithDetails(c, http.StatusConflict, "SLOT_UNAVAILABLE",
			"Some requested hours are not available", gin.H{"hours": slotErr.Hours})
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Slot no longer available, please re-fetch availability")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
	}
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.service.ListForCustomer(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListOwnerBookings(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleStudioOwner) && c.GetString("role") != string(domain.RoleAdmin) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Owner role required")
		return
	}
	bookings, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	actor := domain.Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}

	err = h.service.DeleteBooking(c.Request.Context(), id, actor)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"deleted": true})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the studio owner or an admin can delete a booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete booking")
	}
}
