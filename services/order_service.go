package services

import (
	"context"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/validation"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LineParams is one (product, quantity) pair of an order request, both in
// the raw form the client sent
type LineParams struct {
	ProductID string
	Quantity  string
}

// CreateOrderParams describes a new order and its lines
type CreateOrderParams struct {
	CustomerID string
	Lines      []LineParams
}

// UpdateOrderParams describes changes to an order. Lines for products the
// order already has change quantity; other lines are added. A nil
// CustomerID keeps the current customer.
type UpdateOrderParams struct {
	CustomerID *string
	Lines      []LineParams
}

// OrderOptions tune how orders release stock
type OrderOptions struct {
	// RestoreStockOnDelete credits line quantities back to their products
	// when an order or a line is deleted
	RestoreStockOnDelete bool
}

// OrderService handles order commands
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	options   OrderOptions
	logger    *log.Entry
}

// NewOrderService creates an order service over db
func NewOrderService(db *gorm.DB, inventory *InventoryService, options OrderOptions) *OrderService {
	if inventory == nil {
		inventory = NewInventoryService(nil)
	}
	return &OrderService{
		db:        db,
		inventory: inventory,
		options:   options,
		logger:    log.WithField("component", "orders"),
	}
}

// List returns every order with its lines
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return list[models.Order](withLines(s.db.WithContext(ctx)))
}

// Get returns one order with its lines or ErrNotFound
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return find[models.Order](withLines(s.db.WithContext(ctx)), id)
}

// Create inserts an order and all of its lines in one transaction. If any
// line is invalid nothing is persisted.
func (s *OrderService) Create(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customerID, err := s.resolveCustomer(tx, params.CustomerID)
		if err != nil {
			return err
		}

		order := &models.Order{CustomerID: customerID}
		if err := insert(tx, order); err != nil {
			return err
		}

		if err := s.inventory.LockProducts(tx, productRefs(params.Lines)); err != nil {
			return err
		}
		for _, line := range params.Lines {
			if _, err := s.inventory.CreateLine(tx, order.ID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"order_id": orderID, "lines": len(params.Lines)}).Info("order created")
	return s.Get(ctx, orderID)
}

// Update changes line quantities and adds new lines in one transaction
func (s *OrderService) Update(ctx context.Context, id uint, params UpdateOrderParams) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := find[models.Order](tx, id)
		if err != nil {
			return err
		}

		if params.CustomerID != nil {
			customerID, err := s.resolveCustomer(tx, *params.CustomerID)
			if err != nil {
				return err
			}
			if customerID != order.CustomerID {
				if err := tx.Model(order).Update("customer_id", customerID).Error; err != nil {
					return translateError(err)
				}
			}
		}

		if err := s.inventory.LockProducts(tx, productRefs(params.Lines)); err != nil {
			return err
		}
		for _, line := range params.Lines {
			existing, err := findLine(tx, order.ID, line.ProductID)
			if err != nil {
				return err
			}
			if existing != nil {
				err = s.inventory.UpdateLine(tx, existing, line.Quantity)
			} else {
				_, err = s.inventory.CreateLine(tx, order.ID, line.ProductID, line.Quantity)
			}
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(log.Fields{"order_id": id, "lines": len(params.Lines)}).Info("order updated")
	return nil
}

// Delete removes an order and its lines. Stock is only credited back when
// RestoreStockOnDelete is set.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := find[models.Order](tx, id)
		if err != nil {
			return err
		}

		if s.options.RestoreStockOnDelete {
			var lines []models.OrderProduct
			if err := tx.Where("order_id = ?", order.ID).Order("product_id").Find(&lines).Error; err != nil {
				return translateError(err)
			}
			for i := range lines {
				if err := s.inventory.ReleaseLine(tx, &lines[i]); err != nil {
					return err
				}
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderProduct{}).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Delete(order).Error)
	})
}

// resolveCustomer checks that ref names an existing customer
func (s *OrderService) resolveCustomer(tx *gorm.DB, ref string) (uint, error) {
	customerID, ok := parseID(ref)
	found := false
	if ok {
		var count int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
			return 0, translateError(err)
		}
		found = count > 0
	}

	if errs := validation.Order(validation.OrderCandidate{CustomerFound: found}); len(errs) > 0 {
		return 0, invalid(errs)
	}
	return customerID, nil
}

// findLine returns the line of an order for a product, or nil when the order
// has none
func findLine(tx *gorm.DB, orderID uint, productRef string) (*models.OrderProduct, error) {
	productID, ok := parseID(productRef)
	if !ok {
		return nil, nil
	}

	var lines []models.OrderProduct
	err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
		Order("id").
		Limit(1).
		Find(&lines).Error
	if err != nil {
		return nil, translateError(err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return &lines[0], nil
}

func productRefs(lines []LineParams) []string {
	refs := make([]string, 0, len(lines))
	for _, line := range lines {
		refs = append(refs, line.ProductID)
	}
	return refs
}

func withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderProducts", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_products.id")
	}).Preload("OrderProducts.Product")
}
