package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/middleware"
	"github.com/GTDGit/showcase_api/internal/service"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// ProductHandler handles showcase creation and share URL endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct stores the submitted showcase for the current user.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	utils.Success(c, 201, "Product created successfully", product)
}

// GetProduct returns the full stored showcase.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get product")
		return
	}
	utils.Success(c, 200, "", product)
}

// GenerateURL creates a new share URL for the product.
func (h *ProductHandler) GenerateURL(c *gin.Context) {
	url, err := h.productService.GenerateURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to generate URL")
		return
	}
	utils.Success(c, 201, "URL generated successfully", url)
}

// ViewShowcase serves a showcase through its public share token.
func (h *ProductHandler) ViewShowcase(c *gin.Context) {
	showcase, err := h.productService.ViewPublic(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to load showcase")
		return
	}
	utils.Success(c, 200, "", showcase)
}

// TrackEvent records a click on a public showcase.
func (h *ProductHandler) TrackEvent(c *gin.Context) {
	var req service.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.productService.TrackEvent(c.Request.Context(), c.Param("token"), req.Type); err != nil {
		respondError(c, err, "Failed to record event")
		return
	}
	utils.Success(c, 202, "Event recorded", nil)
}
