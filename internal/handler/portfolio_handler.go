package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/service"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// PortfolioHandler serves the portfolio dashboard endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler constructs a PortfolioHandler.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetPortfolio lists products with filters, cursor pagination and statistics.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	var params service.PortfolioParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to fetch portfolio")
		return
	}
	utils.Success(c, 200, "", portfolio)
}

// UpdatePortfolio applies one mutation command to a product.
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var req service.MutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.portfolioService.Mutate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	utils.Success(c, 200, res.Message, res)
}

// DeletePortfolioProduct deletes the product given by the productId query parameter.
func (h *PortfolioHandler) DeletePortfolioProduct(c *gin.Context) {
	if err := h.portfolioService.DeleteProduct(c.Request.Context(), c.Query("productId")); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}
