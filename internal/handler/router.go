package handler

import (
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	_ "github.com/Kilat-Pet-Delivery/service-pet/internal/docs" // swagger docs
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/response"
)

// ServiceName identifies this service in logs, probes and events.
const ServiceName = "service-pet"

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(petService *application.PetService, log *zap.Logger) *gin.Engine {
	response.UseJSONFieldNames()

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	NewHealthHandler(petService, ServiceName).RegisterRoutes(router)

	petHandler := NewPetHandler(petService)
	petHandler.RegisterRoutes(&router.RouterGroup, "/pets")
	petHandler.RegisterRoutes(&router.RouterGroup, "/api/v1/pets")

	NewAdminPetHandler(petService).RegisterRoutes(&router.RouterGroup)

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	return router
}
