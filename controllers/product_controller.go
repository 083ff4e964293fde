package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/orders-api/config"
	"github.com/kendall-kelly/orders-api/services"
)

// CreateProductRequest represents the request body for creating a product.
// Stock defaults to 0 and hidden to false.
type CreateProductRequest struct {
	Title          Param  `json:"title" binding:"required,present"`
	Description    Param  `json:"description" binding:"required,present"`
	UnitsAvailable *Param `json:"units_available"`
	UnitPrice      Param  `json:"unit_price" binding:"required,present"`
	Hidden         *Param `json:"hidden"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Title          *Param `json:"title"`
	Description    *Param `json:"description"`
	UnitsAvailable *Param `json:"units_available"`
	UnitPrice      *Param `json:"unit_price"`
	Hidden         *Param `json:"hidden"`
}

func productService() *services.ProductService {
	return services.NewProductService(config.GetDB())
}

// ListProducts handles GET /api/v1/products - hidden products are listed too
func ListProducts(c *gin.Context) {
	products, err := productService().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := productService().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := productService().Create(c.Request.Context(), services.ProductParams{
		Title:          optional(&req.Title),
		Description:    optional(&req.Description),
		UnitsAvailable: optional(req.UnitsAvailable),
		UnitPrice:      optional(&req.UnitPrice),
		Hidden:         optional(req.Hidden),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/v1/products/:id
func UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	err := productService().Update(c.Request.Context(), id, services.ProductParams{
		Title:          optional(req.Title),
		Description:    optional(req.Description),
		UnitsAvailable: optional(req.UnitsAvailable),
		UnitPrice:      optional(req.UnitPrice),
		Hidden:         optional(req.Hidden),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, MsgUpdated)
}

// DeleteProduct handles DELETE /api/v1/products/:id - the product's order
// lines are deleted with it
func DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := productService().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Product successfully deleted.")
}
