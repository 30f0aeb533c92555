package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Public read endpoints for customers browsing a studio.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/studios/:id/availability", h.ListAvailableHours)
	rg.GET("/studios/:id/available-dates", h.ListAvailableDates)
}

// Owner maintenance endpoints; rg must carry the auth middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/studios/:id/availability/generate", h.GenerateRange)
	rg.POST("/studios/:id/availability/toggle", h.ToggleSlot)
}

func (h *Handler) ListAvailableHours(c *gin.Context) {
	studioID, ok := h.studioID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	hours, err := h.service.ListAvailableHours(c.Request.Context(), studioID, date)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hours": hours})
}

func (h *Handler) ListAvailableDates(c *gin.Context) {
	studioID, ok := h.studioID(c)
	if !ok {
		return
	}

	dates, err := h.service.ListAvailableDates(c.Request.Context(), studioID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dates")
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	response.Success(c, http.StatusOK, gin.H{"dates": out})
}

func (h *Handler) GenerateRange(c *gin.Context) {
	studioID, ok := h.studioID(c)
	if !ok {
		return
	}

	var req GenerateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	from, err1 := time.Parse("2006-01-02", req.From)
	to, err2 := time.Parse("2006-01-02", req.To)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	days, err := h.service.GenerateRange(c.Request.Context(), studioID, from, to, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"days": days})
}

func (h *Handler) ToggleSlot(c *gin.Context) {
	studioID, ok := h.studioID(c)
	if !ok {
		return
	}

	var req ToggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Hour == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
		return
	}

	available, err := h.service.ToggleSlot(c.Request.Context(), studioID, date, *req.Hour, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hour": *req.Hour, "is_available": available})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio, day or slot not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the studio owner or an admin can manage availability")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability operation failed")
	}
}

func (h *Handler) studioID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return 0, false
	}
	return id, true
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}
