package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/orders-api/config"
	"github.com/kendall-kelly/orders-api/services"
)

// OrderLineRequest is one entry of order.products
type OrderLineRequest struct {
	ID       Param `json:"id" binding:"required,present"`
	Quantity Param `json:"quantity" binding:"required,present"`
}

// OrderLinesRequest is the nested "order" object of an order request
type OrderLinesRequest struct {
	Products []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID Param              `json:"customer_id" binding:"required,present"`
	Order      *OrderLinesRequest `json:"order" binding:"required"`
}

// UpdateOrderRequest represents the request body for updating an order.
// Products the order already has change quantity, others are added.
type UpdateOrderRequest struct {
	CustomerID *Param             `json:"customer_id"`
	Order      *OrderLinesRequest `json:"order" binding:"required"`
}

func (r *OrderLinesRequest) lines() []services.LineParams {
	lines := make([]services.LineParams, 0, len(r.Products))
	for _, product := range r.Products {
		lines = append(lines, services.LineParams{
			ProductID: product.ID.String(),
			Quantity:  product.Quantity.String(),
		})
	}
	return lines
}

func orderOptions() services.OrderOptions {
	return services.OrderOptions{
		RestoreStockOnDelete: config.GetConfig().RestoreStockOnDelete,
	}
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB(), nil, orderOptions())
}

// ListOrders handles GET /api/v1/orders
func ListOrders(c *gin.Context) {
	orders, err := orderService().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id - the order is rendered with its lines
func GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := orderService().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /api/v1/orders - creates the order and debits
// every product in one transaction
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := orderService().Create(c.Request.Context(), services.CreateOrderParams{
		CustomerID: req.CustomerID.String(),
		Lines:      req.Order.lines(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /api/v1/orders/:id
func UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	err := orderService().Update(c.Request.Context(), id, services.UpdateOrderParams{
		CustomerID: optional(req.CustomerID),
		Lines:      req.Order.lines(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, MsgUpdated)
}

// DeleteOrder handles DELETE /api/v1/orders/:id
func DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := orderService().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Order successfully deleted.")
}
