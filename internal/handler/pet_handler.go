package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/response"
)

// PetHandler handles HTTP requests for the pet collection.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes mounts the pet routes under basePath.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, basePath string) {
	pets := r.Group(basePath)
	{
		pets.GET("", h.ListPets)
		pets.GET("/", h.ListPets)
		pets.POST("", h.CreatePet)
		pets.POST("/", h.CreatePet)
		pets.GET("/:id", h.GetPet)
		pets.PUT("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.DeletePet)
	}
}

// ListPets godoc
// @Summary List pets
// @Description Newest first. count is the total matching the filter, independent of skip and limit.
// @Tags pets
// @Produce json
// @Param kind query string false "Pet kind" Enums(dog, cat, bird, rabbit, fish, reptile, other)
// @Param status query string false "Pet status" Enums(available, pending, adopted)
// @Param limit query int false "Page size; values <= 0 mean 10" default(10)
// @Param skip query int false "Documents to skip; negative means 0" default(0)
// @Success 200 {object} application.PetListDTO
// @Failure 400 {object} response.Envelope
// @Router /pets [get]
func (h *PetHandler) ListPets(c *gin.Context) {
	var q application.ListPetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.service.ListPets(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet godoc
// @Summary Create a pet
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body application.PetRequest true "Pet payload"
// @Success 201 {object} application.PetDTO
// @Failure 400 {object} response.Envelope
// @Router /pets [post]
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetPet godoc
// @Summary Get a pet by id
// @Tags pets
// @Produce json
// @Param id path string true "Pet ObjectID (24 hex characters)"
// @Success 200 {object} application.PetDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [get]
func (h *PetHandler) GetPet(c *gin.Context) {
	result, err := h.service.GetPet(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePet godoc
// @Summary Replace the fields of a pet
// @Description Responds 304 with no body when the payload matches the stored pet.
// @Tags pets
// @Accept json
// @Produce json
// @Param id path string true "Pet ObjectID (24 hex characters)"
// @Param payload body application.PetRequest true "Pet payload"
// @Success 200 {object} application.PetDTO
// @Success 304 "not modified"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [put]
func (h *PetHandler) UpdatePet(c *gin.Context) {
	// A missing pet is reported before payload errors.
	if _, err := h.service.GetPet(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePet godoc
// @Summary Delete a pet
// @Tags pets
// @Produce json
// @Param id path string true "Pet ObjectID (24 hex characters)"
// @Success 200 {object} application.DeleteResultDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [delete]
func (h *PetHandler) DeletePet(c *gin.Context) {
	result, err := h.service.DeletePet(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
