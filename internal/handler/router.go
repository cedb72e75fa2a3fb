package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Portfolio *PortfolioHandler
	Product   *ProductHandler
	Media     *MediaHandler
	Draft     *DraftHandler
}

// SetupRoutes registers all routes.
func SetupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public showcase pages reached through share URLs
	public := router.Group("/v1/p")
	{
		public.GET("/:token", handlers.Product.ViewShowcase)
		public.POST("/:token/events", handlers.Product.TrackEvent)
	}

	api := router.Group("/v1")
	api.Use(jwtMiddleware.Handle())
	{
		// Portfolio dashboard
		api.GET("/portfolio", handlers.Portfolio.GetPortfolio)
		api.PATCH("/portfolio", handlers.Portfolio.UpdatePortfolio)
		api.DELETE("/portfolio", handlers.Portfolio.DeletePortfolioProduct)

		// Showcase creation
		api.POST("/products", handlers.Product.CreateProduct)
		api.GET("/products/:id", handlers.Product.GetProduct)
		api.POST("/products/:id/urls", handlers.Product.GenerateURL)

		// Media
		api.POST("/media", handlers.Media.Upload)

		// Wizard drafts
		api.PUT("/drafts/:tier", handlers.Draft.SaveDraft)
		api.GET("/drafts/:tier", handlers.Draft.GetDraft)
		api.DELETE("/drafts/:tier", handlers.Draft.DeleteDraft)
	}
}
