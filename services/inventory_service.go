package services

import (
	"errors"
	"sort"

	"github.com/kendall-kelly/orders-api/metrics"
	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/validation"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService keeps products' units_available in step with the order
// lines that draw from them. Every method runs inside the caller's
// transaction and locks the product rows it touches.
type InventoryService struct {
	metrics *metrics.InventoryMetrics
	logger  *log.Entry
}

// NewInventoryService creates an inventory service reporting to m
func NewInventoryService(m *metrics.InventoryMetrics) *InventoryService {
	if m == nil {
		m = metrics.Inventory()
	}
	return &InventoryService{
		metrics: m,
		logger:  log.WithField("component", "inventory"),
	}
}

// LockProducts takes row locks on every referenced product in ascending id
// order, so concurrent orders over the same products cannot deadlock.
// References that do not parse are skipped; they fail validation later.
func (s *InventoryService) LockProducts(tx *gorm.DB, productRefs []string) error {
	seen := make(map[uint]bool, len(productRefs))
	ids := make([]uint, 0, len(productRefs))
	for _, ref := range productRefs {
		if id, ok := parseID(ref); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var locked []models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&locked).Error
	return translateError(err)
}

// CreateLine validates quantity against the product's current stock, then
// inserts the line and debits the product.
func (s *InventoryService) CreateLine(tx *gorm.DB, orderID uint, productRef, quantity string) (*models.OrderProduct, error) {
	var product *models.Product
	if productID, ok := parseID(productRef); ok {
		p, err := lockProduct(tx, productID)
		if err != nil {
			return nil, err
		}
		product = p
	}

	errs := validation.OrderLine(lineCandidate(product, quantity, 0))
	if len(errs) > 0 {
		s.metrics.RecordRejected(errs[0].Field)
		return nil, invalid(errs)
	}

	units, _ := validation.ParseInt(quantity)
	line := &models.OrderProduct{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  int(units),
	}
	if err := insert(tx, line); err != nil {
		return nil, err
	}
	if err := s.debit(tx, product, line.Quantity); err != nil {
		return nil, err
	}

	line.Product = product
	return line, nil
}

// UpdateLine changes a line's quantity. The previous quantity is counted as
// available while validating, then credited back before the new quantity is
// debited.
func (s *InventoryService) UpdateLine(tx *gorm.DB, line *models.OrderProduct, quantity string) error {
	product, err := lockProduct(tx, line.ProductID)
	if err != nil {
		return err
	}
	if err := lockLine(tx, line); err != nil {
		return err
	}

	errs := validation.OrderLine(lineCandidate(product, quantity, line.Quantity))
	if len(errs) > 0 {
		s.metrics.RecordRejected(errs[0].Field)
		return invalid(errs)
	}

	units, _ := validation.ParseInt(quantity)
	if err := s.credit(tx, product, line.Quantity); err != nil {
		return err
	}
	if err := s.debit(tx, product, int(units)); err != nil {
		return err
	}
	if err := tx.Model(line).Update("quantity", int(units)).Error; err != nil {
		return translateError(err)
	}

	line.Quantity = int(units)
	line.Product = product
	return nil
}

// ReleaseLine gives a line's quantity back to its product. A product that
// no longer exists has nothing to restore.
func (s *InventoryService) ReleaseLine(tx *gorm.DB, line *models.OrderProduct) error {
	product, err := lockProduct(tx, line.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}
	if err := lockLine(tx, line); err != nil {
		return err
	}
	return s.credit(tx, product, line.Quantity)
}

// lockLine reloads a line under a row lock. It must run after the line's
// product is locked, so the quantity credited back is the committed one.
func lockLine(tx *gorm.DB, line *models.OrderProduct) error {
	current, err := find[models.OrderProduct](tx.Clauses(clause.Locking{Strength: "UPDATE"}), line.ID)
	if err != nil {
		return err
	}
	line.Quantity = current.Quantity
	return nil
}

// lockProduct reads a product under a row lock; nil when it does not exist
func lockProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	product, err := find[models.Product](tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return product, err
}

func (s *InventoryService) debit(tx *gorm.DB, product *models.Product, units int) error {
	if err := s.adjust(tx, product, -units); err != nil {
		return err
	}
	s.metrics.RecordDebit(units)
	s.logger.WithFields(log.Fields{
		"product_id":      product.ID,
		"units":           units,
		"units_available": product.UnitsAvailable,
	}).Debug("stock debited")
	return nil
}

func (s *InventoryService) credit(tx *gorm.DB, product *models.Product, units int) error {
	if err := s.adjust(tx, product, units); err != nil {
		return err
	}
	s.metrics.RecordCredit(units)
	s.logger.WithFields(log.Fields{
		"product_id":      product.ID,
		"units":           units,
		"units_available": product.UnitsAvailable,
	}).Debug("stock credited")
	return nil
}

func (s *InventoryService) adjust(tx *gorm.DB, product *models.Product, delta int) error {
	err := tx.Model(product).
		Update("units_available", gorm.Expr("units_available + ?", delta)).Error
	if err != nil {
		return translateError(err)
	}
	product.UnitsAvailable += delta
	return nil
}

func lineCandidate(product *models.Product, quantity string, held int) validation.OrderLineCandidate {
	candidate := validation.OrderLineCandidate{Quantity: quantity}
	if product != nil {
		candidate.ProductFound = true
		candidate.ProductHidden = product.Hidden
		candidate.AvailableUnits = product.UnitsAvailable + held
	}
	return candidate
}
