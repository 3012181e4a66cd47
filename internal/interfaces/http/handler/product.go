package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/optivista/backend/internal/application/catalog"
	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes. Reads are public (GET requests
// under /products skip JWT auth); writes require the seller or admin role.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/sku/:sku", h.GetProductBySKU)
	}

	manage := rg.Group("/products", middleware.RequireRole(identity.RoleSeller, identity.RoleAdmin))
	{
		manage.POST("", h.CreateProduct)
		manage.PUT("/:id", h.UpdateProduct)
		manage.DELETE("/:id", h.DeleteProduct)
		manage.PUT("/:id/stock", h.AdjustStock)
		manage.POST("/:id/activate", h.ActivateProduct)
		manage.POST("/:id/deactivate", h.DeactivateProduct)
		manage.POST("/:id/discontinue", h.DiscontinueProduct)
	}
}

// ListProducts returns a filtered page of products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Normalize()

	input := catalogapp.ListProductsInput{
		Keyword:    req.Keyword,
		Category:   c.Query("category"),
		Style:      c.Query("style"),
		FrameColor: c.Query("frame_color"),
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	if status := c.Query("status"); status != "" {
		s := catalog.ProductStatus(status)
		input.Status = &s
	}

	result, err := h.productService.ListProducts(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products := make([]ProductResponse, len(result.Products))
	for i, p := range result.Products {
		products[i] = toProductResponse(p)
	}
	h.SuccessWithMeta(c, products, result.Total, result.Page, result.PageSize)
}

// GetProduct returns a single product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(*product))
}

// GetProductBySKU returns a single product by SKU
func (h *ProductHandler) GetProductBySKU(c *gin.Context) {
	product, err := h.productService.GetProductBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(*product))
}

// CreateProduct adds a product to the catalog
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), catalogapp.CreateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		Frame:       req.Frame.toAttributes(),
		ImageURL:    req.ImageURL,
		Model3DURL:  req.Model3DURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProductResponse(*product))
}

// UpdateProduct updates product fields
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	input := catalogapp.UpdateProductInput{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Model3DURL:  req.Model3DURL,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			h.BadRequest(c, "Invalid price")
			return
		}
		input.Price = &price
	}
	if req.Frame != nil {
		frame := req.Frame.toAttributes()
		input.Frame = &frame
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(*product))
}

// AdjustStock sets the absolute stock level
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), catalogapp.AdjustStockInput{
		ProductID: productID,
		Stock:     req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(*product))
}

// ActivateProduct makes a product purchasable
func (h *ProductHandler) ActivateProduct(c *gin.Context) {
	h.lifecycle(c, h.productService.ActivateProduct, "Product activated")
}

// DeactivateProduct hides a product from sale
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	h.lifecycle(c, h.productService.DeactivateProduct, "Product deactivated")
}

// DiscontinueProduct permanently retires a product
func (h *ProductHandler) DiscontinueProduct(c *gin.Context) {
	h.lifecycle(c, h.productService.DiscontinueProduct, "Product discontinued")
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ProductHandler) lifecycle(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := fn(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": message})
}
