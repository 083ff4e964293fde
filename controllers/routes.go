package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the resource endpoints on an API group
func RegisterRoutes(v1 *gin.RouterGroup) {
	registerValidators()

	customers := v1.Group("/customers")
	{
		customers.GET("", ListCustomers)
		customers.POST("", CreateCustomer)
		customers.GET("/:id", GetCustomer)
		customers.PUT("/:id", UpdateCustomer)
		customers.PATCH("/:id", UpdateCustomer)
		customers.DELETE("/:id", DeleteCustomer)
	}

	products := v1.Group("/products")
	{
		products.GET("", ListProducts)
		products.POST("", CreateProduct)
		products.GET("/:id", GetProduct)
		products.PUT("/:id", UpdateProduct)
		products.PATCH("/:id", UpdateProduct)
		products.DELETE("/:id", DeleteProduct)
	}

	orders := v1.Group("/orders")
	{
		orders.GET("", ListOrders)
		orders.POST("", CreateOrder)
		orders.GET("/:id", GetOrder)
		orders.PUT("/:id", UpdateOrder)
		orders.PATCH("/:id", UpdateOrder)
		orders.DELETE("/:id", DeleteOrder)
	}

	orderProducts := v1.Group("/order_products")
	{
		orderProducts.GET("", ListOrderProducts)
		orderProducts.POST("", CreateOrderProduct)
		orderProducts.GET("/:id", GetOrderProduct)
		orderProducts.PUT("/:id", UpdateOrderProduct)
		orderProducts.PATCH("/:id", UpdateOrderProduct)
		orderProducts.DELETE("/:id", DeleteOrderProduct)
	}
}
