package services

import (
	"context"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/validation"
	"gorm.io/gorm"
)

// OrderProductService exposes single order lines. It shares the stock rules
// of OrderService.
type OrderProductService struct {
	db        *gorm.DB
	inventory *InventoryService
	options   OrderOptions
}

// NewOrderProductService creates an order line service over db
func NewOrderProductService(db *gorm.DB, inventory *InventoryService, options OrderOptions) *OrderProductService {
	if inventory == nil {
		inventory = NewInventoryService(nil)
	}
	return &OrderProductService{db: db, inventory: inventory, options: options}
}

// List returns every order line with its product
func (s *OrderProductService) List(ctx context.Context) ([]models.OrderProduct, error) {
	return list[models.OrderProduct](s.db.WithContext(ctx).Preload("Product"))
}

// Get returns one order line or ErrNotFound
func (s *OrderProductService) Get(ctx context.Context, id uint) (*models.OrderProduct, error) {
	return find[models.OrderProduct](s.db.WithContext(ctx).Preload("Product"), id)
}

// Create adds a line to an existing order, debiting the product. An unknown
// order is a validation failure, like an unknown product.
func (s *OrderProductService) Create(ctx context.Context, orderRef string, line LineParams) (*models.OrderProduct, error) {
	var created *models.OrderProduct
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderID, ok := parseID(orderRef)
		if ok {
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return translateError(err)
			}
			ok = count > 0
		}
		if !ok {
			var errs validation.Errors
			errs.Add("order", validation.MsgMustExist)
			return invalid(errs)
		}

		var err error
		created, err = s.inventory.CreateLine(tx, orderID, line.ProductID, line.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes a line's quantity, reconciling the product's stock
func (s *OrderProductService) Update(ctx context.Context, id uint, quantity string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := find[models.OrderProduct](tx, id)
		if err != nil {
			return err
		}
		return s.inventory.UpdateLine(tx, line, quantity)
	})
}

// Delete removes a line. Stock is only credited back when
// RestoreStockOnDelete is set.
func (s *OrderProductService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := find[models.OrderProduct](tx, id)
		if err != nil {
			return err
		}
		if s.options.RestoreStockOnDelete {
			if err := s.inventory.ReleaseLine(tx, line); err != nil {
				return err
			}
		}
		return translateError(tx.Delete(line).Error)
	})
}
