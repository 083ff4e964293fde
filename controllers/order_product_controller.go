package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/orders-api/config"
	"github.com/kendall-kelly/orders-api/services"
)

// CreateOrderProductRequest represents the request body for adding a line
// to an existing order
type CreateOrderProductRequest struct {
	OrderID   Param `json:"order_id" binding:"required,present"`
	ProductID Param `json:"product_id" binding:"required,present"`
	Quantity  Param `json:"quantity" binding:"required,present"`
}

// UpdateOrderProductRequest represents the request body for changing a
// line's quantity
type UpdateOrderProductRequest struct {
	Quantity Param `json:"quantity" binding:"required,present"`
}

func orderProductService() *services.OrderProductService {
	return services.NewOrderProductService(config.GetDB(), nil, orderOptions())
}

// ListOrderProducts handles GET /api/v1/order_products
func ListOrderProducts(c *gin.Context) {
	lines, err := orderProductService().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GetOrderProduct handles GET /api/v1/order_products/:id
func GetOrderProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	line, err := orderProductService().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// CreateOrderProduct handles POST /api/v1/order_products
func CreateOrderProduct(c *gin.Context) {
	var req CreateOrderProductRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := orderProductService().Create(c.Request.Context(), req.OrderID.String(), services.LineParams{
		ProductID: req.ProductID.String(),
		Quantity:  req.Quantity.String(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// UpdateOrderProduct handles PUT /api/v1/order_products/:id
func UpdateOrderProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateOrderProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := orderProductService().Update(c.Request.Context(), id, req.Quantity.String()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, MsgUpdated)
}

// DeleteOrderProduct handles DELETE /api/v1/order_products/:id
func DeleteOrderProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := orderProductService().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Order product successfully deleted.")
}
