package services

import (
	"errors"
	"testing"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerParams() CustomerParams {
	return CustomerParams{
		Email:          ptr("jane@example.com"),
		Name:           ptr("Jane Doe"),
		DocumentNumber: ptr("12345678"),
		PhoneNumber:    ptr("59899123456"),
		Address:        ptr("Main St 123"),
	}
}

func TestCustomerServiceCreate(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewCustomerService(db)

	customer, err := service.Create(ctx, validCustomerParams())
	require.NoError(t, err)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, "jane@example.com", customer.Email)
	assert.Equal(t, int64(12345678), customer.DocumentNumber)
	assert.Equal(t, int64(59899123456), customer.PhoneNumber)
}

func TestCustomerServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(p *CustomerParams)
		expected []string
	}{
		{
			name:   "every field missing",
			modify: func(p *CustomerParams) { *p = CustomerParams{} },
			expected: []string{
				"Email can't be blank.",
				"Name can't be blank.",
				"Document number can't be blank.",
				"Phone number can't be blank.",
				"Address can't be blank.",
				"Document number is not a number.",
				"Phone number is not a number.",
			},
		},
		{
			name:     "non numeric document number",
			modify:   func(p *CustomerParams) { p.DocumentNumber = ptr("12-34") },
			expected: []string{"Document number is not a number."},
		},
		{
			name:     "fractional phone number",
			modify:   func(p *CustomerParams) { p.PhoneNumber = ptr("598.5") },
			expected: []string{"Phone number must be an integer."},
		},
		{
			name:     "blank name",
			modify:   func(p *CustomerParams) { p.Name = ptr("   ") },
			expected: []string{"Name can't be blank."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, ctx := setupServiceTest(t)
			service := NewCustomerService(db)

			params := validCustomerParams()
			tt.modify(&params)
			_, err := service.Create(ctx, params)

			assert.Equal(t, tt.expected, requireValidation(t, err))
			assert.Equal(t, int64(0), testutil.Count(t, db, &models.Customer{}))
		})
	}
}

func TestCustomerServiceDocumentNumberUniqueness(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewCustomerService(db)

	first, err := service.Create(ctx, validCustomerParams())
	require.NoError(t, err)

	_, err = service.Create(ctx, validCustomerParams())
	assert.Equal(t, []string{"Document number has already been taken."}, requireValidation(t, err))

	// Saving a customer with its own number is not a conflict
	err = service.Update(ctx, first.ID, CustomerParams{Name: ptr("Jane Smith")})
	assert.NoError(t, err)

	second := validCustomerParams()
	second.DocumentNumber = ptr("87654321")
	other, err := service.Create(ctx, second)
	require.NoError(t, err)

	err = service.Update(ctx, other.ID, CustomerParams{DocumentNumber: ptr("12345678")})
	assert.Equal(t, []string{"Document number has already been taken."}, requireValidation(t, err))
}

func TestCustomerServiceUpdate(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewCustomerService(db)
	customer := testutil.CreateCustomer(t, db, 2001)

	t.Run("only sent attributes change", func(t *testing.T) {
		err := service.Update(ctx, customer.ID, CustomerParams{
			Email:       ptr("new@example.com"),
			PhoneNumber: ptr("42"),
		})
		require.NoError(t, err)

		updated, err := service.Get(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, int64(42), updated.PhoneNumber)
		assert.Equal(t, customer.Name, updated.Name)
		assert.Equal(t, customer.DocumentNumber, updated.DocumentNumber)
		assert.Equal(t, customer.Address, updated.Address)
	})

	t.Run("invalid attributes are rejected", func(t *testing.T) {
		err := service.Update(ctx, customer.ID, CustomerParams{Email: ptr("")})
		assert.Equal(t, []string{"Email can't be blank."}, requireValidation(t, err))
	})

	t.Run("unknown customer", func(t *testing.T) {
		err := service.Update(ctx, 999, CustomerParams{Name: ptr("Nobody")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCustomerServiceListAndGet(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewCustomerService(db)

	customers, err := service.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)

	first := testutil.CreateCustomer(t, db, 3001)
	second := testutil.CreateCustomer(t, db, 3002)

	customers, err = service.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, first.ID, customers[0].ID)
	assert.Equal(t, second.ID, customers[1].ID)

	found, err := service.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Email, found.Email)

	_, err = service.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerServiceDelete(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewCustomerService(db)

	t.Run("customer without orders", func(t *testing.T) {
		customer := testutil.CreateCustomer(t, db, 4001)
		require.NoError(t, service.Delete(ctx, customer.ID))

		_, err := service.Get(ctx, customer.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("customer with orders is kept", func(t *testing.T) {
		customer := testutil.CreateCustomer(t, db, 4002)
		require.NoError(t, db.Create(&models.Order{CustomerID: customer.ID}).Error)

		err := service.Delete(ctx, customer.ID)
		var constraintErr *ConstraintError
		require.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, "Cannot delete a customer with existing orders.", constraintErr.Message)

		_, err = service.Get(ctx, customer.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown customer", func(t *testing.T) {
		assert.ErrorIs(t, service.Delete(ctx, 999), ErrNotFound)
	})
}
