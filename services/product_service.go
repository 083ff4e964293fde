package services

import (
	"context"
	"strconv"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/validation"
	"gorm.io/gorm"
)

// ProductParams are the product attributes sent by a client. Nil fields
// were not sent.
type ProductParams struct {
	Title          *string
	Description    *string
	UnitsAvailable *string
	UnitPrice      *string
	Hidden         *string
}

// ProductService handles product commands
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a product service over db
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns every product, hidden ones included
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](s.db.WithContext(ctx))
}

// Get returns one product or ErrNotFound
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return find[models.Product](s.db.WithContext(ctx), id)
}

// Create validates and inserts a new product. Stock defaults to 0 and
// hidden to false.
func (s *ProductService) Create(ctx context.Context, params ProductParams) (*models.Product, error) {
	product, err := buildProduct(params.Description, validation.ProductCandidate{
		Title:          deref(params.Title, ""),
		UnitsAvailable: deref(params.UnitsAvailable, "0"),
		UnitPrice:      deref(params.UnitPrice, ""),
		Hidden:         deref(params.Hidden, "false"),
	})
	if err != nil {
		return nil, err
	}

	if err := insert(s.db.WithContext(ctx), product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the sent attributes to an existing product. The row is
// locked so a manual stock change cannot interleave with an order.
func (s *ProductService) Update(ctx context.Context, id uint, params ProductParams) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := lockProduct(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}

		description := existing.Description
		if params.Description != nil {
			description = params.Description
		}
		updated, err := buildProduct(description, validation.ProductCandidate{
			Title:          deref(params.Title, existing.Title),
			UnitsAvailable: deref(params.UnitsAvailable, strconv.Itoa(existing.UnitsAvailable)),
			UnitPrice:      deref(params.UnitPrice, existing.UnitPrice.String()),
			Hidden:         deref(params.Hidden, strconv.FormatBool(existing.Hidden)),
		})
		if err != nil {
			return err
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		return save(tx, updated)
	})
}

// Delete removes a product together with every order line that used it
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := find[models.Product](tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.OrderProduct{}).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Delete(product).Error)
	})
}

func buildProduct(description *string, candidate validation.ProductCandidate) (*models.Product, error) {
	if errs := validation.Product(candidate); len(errs) > 0 {
		return nil, invalid(errs)
	}

	units, _ := validation.ParseInt(candidate.UnitsAvailable)
	price, _ := validation.ParseDecimal(candidate.UnitPrice)
	hidden := false
	if !validation.IsBlank(candidate.Hidden) {
		hidden, _ = validation.ParseBool(candidate.Hidden)
	}

	return &models.Product{
		Title:          candidate.Title,
		Description:    description,
		UnitsAvailable: int(units),
		UnitPrice:      price.Round(validation.PriceScale),
		Hidden:         hidden,
	}, nil
}
