package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/response"
)

// AdminPetHandler handles admin HTTP requests for the pet registry.
type AdminPetHandler struct {
	service *application.PetService
}

// NewAdminPetHandler creates a new AdminPetHandler.
func NewAdminPetHandler(service *application.PetService) *AdminPetHandler {
	return &AdminPetHandler{service: service}
}

// RegisterRoutes registers admin pet routes.
func (h *AdminPetHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/stats/pets", h.PetStats)
	}
}

// PetStats handles GET /api/v1/admin/stats/pets.
// @Summary Pet counts by status
// @Tags admin
// @Produce json
// @Success 200 {object} application.PetStatsDTO
// @Router /api/v1/admin/stats/pets [get]
func (h *AdminPetHandler) PetStats(c *gin.Context) {
	stats, err := h.service.PetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
