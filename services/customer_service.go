package services

import (
	"context"
	"strconv"

	"github.com/kendall-kelly/orders-api/models"
	"github.com/kendall-kelly/orders-api/validation"
	"gorm.io/gorm"
)

// CustomerParams are the customer attributes sent by a client. Nil fields
// were not sent.
type CustomerParams struct {
	Email          *string
	Name           *string
	DocumentNumber *string
	PhoneNumber    *string
	Address        *string
}

// CustomerService handles customer commands
type CustomerService struct {
	db *gorm.DB
}

// NewCustomerService creates a customer service over db
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// List returns every customer
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return list[models.Customer](s.db.WithContext(ctx))
}

// Get returns one customer or ErrNotFound
func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return find[models.Customer](s.db.WithContext(ctx), id)
}

// Create validates and inserts a new customer
func (s *CustomerService) Create(ctx context.Context, params CustomerParams) (*models.Customer, error) {
	var customer *models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := validation.CustomerCandidate{
			Email:          deref(params.Email, ""),
			Name:           deref(params.Name, ""),
			DocumentNumber: deref(params.DocumentNumber, ""),
			PhoneNumber:    deref(params.PhoneNumber, ""),
			Address:        deref(params.Address, ""),
		}
		built, err := s.build(tx, 0, candidate)
		if err != nil {
			return err
		}
		if err := insert(tx, built); err != nil {
			return err
		}
		customer = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Update applies the sent attributes to an existing customer
func (s *CustomerService) Update(ctx context.Context, id uint, params CustomerParams) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := find[models.Customer](tx, id)
		if err != nil {
			return err
		}

		candidate := validation.CustomerCandidate{
			Email:          deref(params.Email, existing.Email),
			Name:           deref(params.Name, existing.Name),
			DocumentNumber: deref(params.DocumentNumber, strconv.FormatInt(existing.DocumentNumber, 10)),
			PhoneNumber:    deref(params.PhoneNumber, strconv.FormatInt(existing.PhoneNumber, 10)),
			Address:        deref(params.Address, existing.Address),
		}
		updated, err := s.build(tx, existing.ID, candidate)
		if err != nil {
			return err
		}
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		return save(tx, updated)
	})
}

// Delete removes a customer. Customers that still own orders are kept.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := find[models.Customer](tx, id)
		if err != nil {
			return err
		}

		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", customer.ID).Count(&orders).Error; err != nil {
			return translateError(err)
		}
		if orders > 0 {
			return &ConstraintError{Message: "Cannot delete a customer with existing orders."}
		}

		return translateError(tx.Delete(customer).Error)
	})
}

// build validates candidate and converts it to a model. selfID excludes the
// customer being updated from the uniqueness check.
func (s *CustomerService) build(tx *gorm.DB, selfID uint, candidate validation.CustomerCandidate) (*models.Customer, error) {
	var ctx validation.CustomerContext
	if documentNumber, ok := validation.ParseInt(candidate.DocumentNumber); ok {
		taken, err := documentNumberTaken(tx, documentNumber, selfID)
		if err != nil {
			return nil, err
		}
		ctx.DocumentNumberTaken = taken
	}

	if errs := validation.Customer(candidate, ctx); len(errs) > 0 {
		return nil, invalid(errs)
	}

	documentNumber, _ := validation.ParseInt(candidate.DocumentNumber)
	phoneNumber, _ := validation.ParseInt(candidate.PhoneNumber)
	return &models.Customer{
		Email:          candidate.Email,
		Name:           candidate.Name,
		DocumentNumber: documentNumber,
		PhoneNumber:    phoneNumber,
		Address:        candidate.Address,
	}, nil
}

func documentNumberTaken(tx *gorm.DB, documentNumber int64, selfID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Customer{}).
		Where("document_number = ? AND id <> ?", documentNumber, selfID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
