package validation

import (
	"math"

	"github.com/shopspring/decimal"
)

// CustomerCandidate carries the raw attribute values of a customer about to
// be saved
type CustomerCandidate struct {
	Email          string
	Name           string
	DocumentNumber string
	PhoneNumber    string
	Address        string
}

// CustomerContext is what the store knows about the candidate
type CustomerContext struct {
	// DocumentNumberTaken is true when another customer already uses the number
	DocumentNumberTaken bool
}

// Customer checks presence, numericality and uniqueness
func Customer(c CustomerCandidate, ctx CustomerContext) Errors {
	var errs Errors

	required := []struct{ field, value string }{
		{"email", c.Email},
		{"name", c.Name},
		{"document_number", c.DocumentNumber},
		{"phone_number", c.PhoneNumber},
		{"address", c.Address},
	}
	for _, r := range required {
		if IsBlank(r.value) {
			errs.Add(r.field, MsgBlank)
		}
	}

	if ctx.DocumentNumberTaken {
		errs.Add("document_number", MsgTaken)
	}

	integer(&errs, "document_number", c.DocumentNumber)
	integer(&errs, "phone_number", c.PhoneNumber)

	return errs
}

// Limits of the products table: stock is bounded so a line's held units can
// be added to it without overflow, and prices fit a decimal(12,2) column.
const (
	MaxUnitsAvailable = math.MaxInt32
	PriceScale        = 2
)

var maxPrice = decimal.New(1, 10)

// ProductCandidate carries the raw attribute values of a product about to
// be saved. An empty Hidden means false.
type ProductCandidate struct {
	Title          string
	UnitsAvailable string
	UnitPrice      string
	Hidden         string
}

// Product checks presence, numericality, the stock floor and the hidden flag
func Product(p ProductCandidate) Errors {
	var errs Errors

	if IsBlank(p.Title) {
		errs.Add("title", MsgBlank)
	}
	if IsBlank(p.UnitsAvailable) {
		errs.Add("units_available", MsgBlank)
	}
	if IsBlank(p.UnitPrice) {
		errs.Add("unit_price", MsgBlank)
	}

	if !IsBlank(p.Hidden) {
		if _, ok := ParseBool(p.Hidden); !ok {
			errs.Add("hidden", MsgNotInList)
		}
	}

	if units, ok := integer(&errs, "units_available", p.UnitsAvailable); ok {
		if units < 0 {
			errs.Add("units_available", MsgNegative)
		}
		if units > MaxUnitsAvailable {
			errs.Add("units_available", MsgStockTooLarge)
		}
	}
	if price, ok := ParseDecimal(p.UnitPrice); !ok {
		errs.Add("unit_price", MsgNotANumber)
	} else if price.Round(PriceScale).Abs().GreaterThanOrEqual(maxPrice) {
		errs.Add("unit_price", MsgPriceTooLarge)
	}

	return errs
}

// OrderLineCandidate describes a line quantity against the product it draws
// stock from
type OrderLineCandidate struct {
	Quantity string

	ProductFound  bool
	ProductHidden bool
	// AvailableUnits is the stock the quantity may consume. For an update it
	// already includes the quantity the line held before.
	AvailableUnits int
}

// OrderLine checks the quantity and that the product can supply it
func OrderLine(l OrderLineCandidate) Errors {
	var errs Errors

	if IsBlank(l.Quantity) {
		errs.Add("quantity", MsgBlank)
	}
	quantity, numeric := integer(&errs, "quantity", l.Quantity)
	if numeric && quantity <= 0 {
		errs.Add("quantity", MsgNotPositive)
	}

	if !l.ProductFound {
		errs.Add("product", MsgMustExist)
		return errs
	}
	if l.ProductHidden {
		errs.Add("product", MsgHidden)
	}
	if numeric && quantity > int64(l.AvailableUnits) {
		errs.Add("product", MsgUnitsExhausted)
	}

	return errs
}

// OrderCandidate carries what an order needs before its lines are added
type OrderCandidate struct {
	CustomerFound bool
}

// Order checks that the order belongs to an existing customer
func Order(o OrderCandidate) Errors {
	var errs Errors
	if !o.CustomerFound {
		errs.Add("customer", MsgMustExist)
	}
	return errs
}
