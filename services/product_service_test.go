package services

import (
	"testing"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductServiceCreate(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewProductService(db)

	t.Run("stock and visibility default", func(t *testing.T) {
		product, err := service.Create(ctx, ProductParams{
			Title:       ptr("Stout"),
			Description: ptr("Dark and dry"),
			UnitPrice:   ptr("4.50"),
		})
		require.NoError(t, err)

		assert.NotZero(t, product.ID)
		assert.Equal(t, 0, product.UnitsAvailable)
		assert.False(t, product.Hidden)
		assert.Equal(t, "4.5", product.UnitPrice.String())
		require.NotNil(t, product.Description)
		assert.Equal(t, "Dark and dry", *product.Description)
	})

	t.Run("every attribute sent", func(t *testing.T) {
		product, err := service.Create(ctx, ProductParams{
			Title:          ptr("Porter"),
			Description:    ptr("Roasty"),
			UnitsAvailable: ptr("12"),
			UnitPrice:      ptr("3"),
			Hidden:         ptr("true"),
		})
		require.NoError(t, err)

		stored, err := service.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, stored.UnitsAvailable)
		assert.True(t, stored.Hidden)
		assert.Equal(t, "3", stored.UnitPrice.String())
	})

	t.Run("price rounds to cents before it is stored", func(t *testing.T) {
		product, err := service.Create(ctx, ProductParams{
			Title:     ptr("Lager"),
			UnitPrice: ptr("1.999"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2", product.UnitPrice.String())

		stored, err := service.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, product.UnitPrice.Equal(stored.UnitPrice), "response and row must agree")
	})
}

func TestProductServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		params   ProductParams
		expected []string
	}{
		{
			name:   "nothing sent",
			params: ProductParams{},
			expected: []string{
				"Title can't be blank.",
				"Unit price can't be blank.",
				"Unit price is not a number.",
			},
		},
		{
			name: "negative stock",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("1"), UnitsAvailable: ptr("-1"),
			},
			expected: []string{"Units available must be greater than or equal to 0."},
		},
		{
			name: "fractional stock",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("1"), UnitsAvailable: ptr("1.5"),
			},
			expected: []string{"Units available must be an integer."},
		},
		{
			name: "price beyond the column",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("1e12"),
			},
			expected: []string{"Unit price must be less than 10000000000."},
		},
		{
			name: "stock beyond the limit",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("1"), UnitsAvailable: ptr("9223372036854775806"),
			},
			expected: []string{"Units available must be less than or equal to 2147483647."},
		},
		{
			name: "price is not a number",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("cheap"),
			},
			expected: []string{"Unit price is not a number."},
		},
		{
			name: "hidden is not a boolean",
			params: ProductParams{
				Title: ptr("Stout"), UnitPrice: ptr("1"), Hidden: ptr("maybe"),
			},
			expected: []string{"Hidden is not included in the list."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, ctx := setupServiceTest(t)
			service := NewProductService(db)

			_, err := service.Create(ctx, tt.params)

			assert.Equal(t, tt.expected, requireValidation(t, err))
			assert.Equal(t, int64(0), testutil.Count(t, db, &models.Product{}))
		})
	}
}

func TestProductServiceUpdate(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewProductService(db)
	product := testutil.CreateProduct(t, db, "Stout", 10)

	t.Run("only sent attributes change", func(t *testing.T) {
		require.NoError(t, service.Update(ctx, product.ID, ProductParams{
			UnitsAvailable: ptr("25"),
			Hidden:         ptr("1"),
		}))

		stored, err := service.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, stored.UnitsAvailable)
		assert.True(t, stored.Hidden)
		assert.Equal(t, "Stout", stored.Title)
		assert.Equal(t, product.UnitPrice.String(), stored.UnitPrice.String())
		require.NotNil(t, stored.Description)
		assert.Equal(t, *product.Description, *stored.Description)
	})

	t.Run("hidden can be turned off again", func(t *testing.T) {
		require.NoError(t, service.Update(ctx, product.ID, ProductParams{Hidden: ptr("false")}))

		stored, err := service.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.False(t, stored.Hidden)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		err := service.Update(ctx, product.ID, ProductParams{UnitsAvailable: ptr("-5")})
		assert.Equal(t, []string{"Units available must be greater than or equal to 0."}, requireValidation(t, err))
		assert.Equal(t, 25, testutil.UnitsAvailable(t, db, product.ID))
	})

	t.Run("unknown product", func(t *testing.T) {
		assert.ErrorIs(t, service.Update(ctx, 999, ProductParams{Title: ptr("Ghost")}), ErrNotFound)
	})
}

func TestProductServiceDeleteCascadesToLines(t *testing.T) {
	db, ctx := setupServiceTest(t)
	service := NewProductService(db)
	customer := testutil.CreateCustomer(t, db, 5001)
	stout := testutil.CreateProduct(t, db, "Stout", 10)
	porter := testutil.CreateProduct(t, db, "Porter", 10)

	order := models.Order{CustomerID: customer.ID}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderProduct{OrderID: order.ID, ProductID: stout.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.OrderProduct{OrderID: order.ID, ProductID: porter.ID, Quantity: 3}).Error)

	require.NoError(t, service.Delete(ctx, stout.ID))

	_, err := service.Get(ctx, stout.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var remaining []models.OrderProduct
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, porter.ID, remaining[0].ProductID)
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Order{}), "the order itself survives")

	assert.ErrorIs(t, service.Delete(ctx, stout.ID), ErrNotFound)
}
