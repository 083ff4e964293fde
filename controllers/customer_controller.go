package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/orders-api/config"
	"github.com/kendall-kelly/orders-api/services"
)

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Email          Param `json:"email" binding:"required,present"`
	Name           Param `json:"name" binding:"required,present"`
	DocumentNumber Param `json:"document_number" binding:"required,present"`
	PhoneNumber    Param `json:"phone_number" binding:"required,present"`
	Address        Param `json:"address" binding:"required,present"`
}

// UpdateCustomerRequest represents the request body for updating a customer.
// Omitted fields keep their current value.
type UpdateCustomerRequest struct {
	Email          *Param `json:"email"`
	Name           *Param `json:"name"`
	DocumentNumber *Param `json:"document_number"`
	PhoneNumber    *Param `json:"phone_number"`
	Address        *Param `json:"address"`
}

func customerService() *services.CustomerService {
	return services.NewCustomerService(config.GetDB())
}

// ListCustomers handles GET /api/v1/customers
func ListCustomers(c *gin.Context) {
	customers, err := customerService().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := customerService().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := customerService().Create(c.Request.Context(), services.CustomerParams{
		Email:          optional(&req.Email),
		Name:           optional(&req.Name),
		DocumentNumber: optional(&req.DocumentNumber),
		PhoneNumber:    optional(&req.PhoneNumber),
		Address:        optional(&req.Address),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	err := customerService().Update(c.Request.Context(), id, services.CustomerParams{
		Email:          optional(req.Email),
		Name:           optional(req.Name),
		DocumentNumber: optional(req.DocumentNumber),
		PhoneNumber:    optional(req.PhoneNumber),
		Address:        optional(req.Address),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, MsgUpdated)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := customerService().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Customer successfully deleted.")
}
