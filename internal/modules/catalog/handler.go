package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"studiobooking/internal/domain"
	"studiobooking/internal/middleware"
	"studiobooking/internal/pkg/response"
	"studiobooking/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/studios", h.ListStudios)
	rg.GET("/studios/:id", h.GetStudio)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/studios", h.CreateStudio)
	rg.PUT("/studios/:id/packages", h.UpdatePackages)
	rg.PUT("/studios/:id/addons", h.UpdateAddons)
	rg.PATCH("/studios/:id/status", middleware.AdminOnly(), h.SetApproval)
	rg.DELETE("/studios/:id", h.DeleteStudio)
}

func (h *Handler) CreateStudio(c *gin.Context) {
	var req CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := actorFrom(c)
	if actor.Role != domain.RoleStudioOwner && actor.Role != domain.RoleAdmin {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only studio owners can create studios")
		return
	}

	studio, err := h.service.CreateStudio(c.Request.Context(), actor.UserID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toStudioResponse(studio))
}

func (h *Handler) GetStudio(c *gin.Context) {
	id, ok := h.studioID(c)
	if !ok {
		return
	}

	studio, err := h.service.GetStudio(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, studio)
}

func (h *Handler) ListStudios(c *gin.Context) {
	var f repository.StudioFilters
	f.City = c.Query("city")
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		f.Offset = v
	}

	studios, total, err := h.service.ListStudios(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load studios")
		return
	}

	items := make([]StudioResponse, 0, len(studios))
	for i := range studios {
		items = append(items, toStudioResponse(&studios[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"studios": items, "total": total})
}

func (h *Handler) UpdatePackages(c *gin.Context) {
	id, ok := h.studioID(c)
	if !ok {
		return
	}

	var req UpdatePackagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	studio, err := h.service.UpdatePackages(c.Request.Context(), id, req.Packages, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, studio)
}

func (h *Handler) UpdateAddons(c *gin.Context) {
	id, ok := h.studioID(c)
	if !ok {
		return
	}

	var req UpdateAddonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	studio, err := h.service.UpdateAddons(c.Request.Context(), id, req.Addons, actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, studio)
}

func (h *Handler) SetApproval(c *gin.Context) {
	id, ok := h.studioID(c)
	if !ok {
		return
	}

	var req SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetApproval(c.Request.Context(), id, domain.ApprovalStatus(req.Status), actorFrom(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *Handler) DeleteStudio(c *gin.Context) {
	id, ok := h.studioID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteStudio(c.Request.Context(), id, actorFrom(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid studio data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to manage this studio")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Studio operation failed")
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

func toStudioResponse(s *domain.Studio) StudioResponse {
	return StudioResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		City:        s.City,
		OpenHour:    s.OpenHour,
		CloseHour:   s.CloseHour,
		Status:      string(s.Status),
		BasePrice:   s.BasePrice(),
	}
}
