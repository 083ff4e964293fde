package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Defaults stock and visibility",
			body: map[string]interface{}{
				"title": "Stout", "description": "Dark", "unit_price": 4.5,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Len(t, response, 6, "Product should expose exactly 6 fields")
				assert.Equal(t, "Stout", response["title"])
				assert.Equal(t, "Dark", response["description"])
				assert.Equal(t, "4.5", response["unit_price"], "price renders as a string")
				assert.Equal(t, float64(0), response["units_available"])
				assert.Equal(t, false, response["hidden"])
			},
		},
		{
			name: "Hidden product with stock",
			body: map[string]interface{}{
				"title": "Porter", "description": "Roasty", "unit_price": "3.25",
				"units_available": 12, "hidden": true,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, float64(12), response["units_available"])
				assert.Equal(t, true, response["hidden"])
			},
		},
		{
			name: "Description is required",
			body: map[string]interface{}{
				"title": "Stout", "unit_price": 4.5,
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "Missing required param.", response["error"])
			},
		},
		{
			name: "Validation errors are listed together",
			body: map[string]interface{}{
				"title": "Stout", "description": "Dark", "unit_price": "free",
				"units_available": -2, "hidden": "sometimes",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, []interface{}{
					"Hidden is not included in the list.",
					"Units available must be greater than or equal to 0.",
					"Unit price is not a number.",
				}, response["error"])
			},
		},
		{
			name: "Object where a scalar belongs",
			body: map[string]interface{}{
				"title": map[string]interface{}{"en": "Stout"}, "description": "Dark", "unit_price": 1,
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "Malformed request body.", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupControllerTest(t)

			w := performRequest(router, http.MethodPost, "/api/v1/products", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			tt.checkResponse(t, decodeObject(t, w))
		})
	}
}

func TestListProductsIncludesHidden(t *testing.T) {
	router, db := setupControllerTest(t)
	testutil.CreateProduct(t, db, "Stout", 1)
	testutil.CreateHiddenProduct(t, db, "Secret", 1)

	w := performRequest(router, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}

func TestUpdateProduct(t *testing.T) {
	router, db := setupControllerTest(t)
	product := testutil.CreateProduct(t, db, "Stout", 10)
	path := fmt.Sprintf("/api/v1/products/%d", product.ID)

	w := performRequest(router, http.MethodPut, path, map[string]interface{}{"units_available": 40, "unit_price": "5"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data was successfully updated.", decodeObject(t, w)["message"])

	w = performRequest(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeObject(t, w)
	assert.Equal(t, float64(40), response["units_available"])
	assert.Equal(t, "5", response["unit_price"])
	assert.Equal(t, "Stout", response["title"])

	w = performRequest(router, http.MethodPut, path, map[string]interface{}{"units_available": "1.5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Units available must be an integer."}, errorMessages(t, w))

	w = performRequest(router, http.MethodPut, "/api/v1/products/999", map[string]interface{}{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductRemovesItsLines(t *testing.T) {
	router, db := setupControllerTest(t)
	customer := testutil.CreateCustomer(t, db, 1)
	product := testutil.CreateProduct(t, db, "Stout", 10)
	order := models.Order{CustomerID: customer.ID}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderProduct{OrderID: order.ID, ProductID: product.ID, Quantity: 2}).Error)

	w := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product successfully deleted.", decodeObject(t, w)["message"])
	assert.Equal(t, int64(0), testutil.Count(t, db, &models.OrderProduct{}))

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
