// Package validation holds the business rules for customers, products and
// order lines. Rules are pure: callers resolve anything that needs the
// database (uniqueness, stock levels) and pass it in as context.
package validation

import (
	"strings"
)

// Message fragments shared by the rules.
const (
	MsgBlank          = "can't be blank"
	MsgNotANumber     = "is not a number"
	MsgNotAnInteger   = "must be an integer"
	MsgNotPositive    = "must be greater than 0"
	MsgNegative       = "must be greater than or equal to 0"
	MsgTaken          = "has already been taken"
	MsgNotInList      = "is not included in the list"
	MsgMustExist      = "must exist"
	MsgHidden         = "is hidden"
	MsgUnitsExhausted = "units not available"
	MsgStockTooLarge  = "must be less than or equal to 2147483647"
	MsgPriceTooLarge  = "must be less than 10000000000"
)

// FieldError is a single broken rule on a named attribute
type FieldError struct {
	Field   string
	Message string
}

// String renders the error as "<Field> <message>.", e.g.
// "Document number is not a number."
func (e FieldError) String() string {
	return humanize(e.Field) + " " + e.Message + "."
}

// Errors is the ordered list of rules an entity breaks
type Errors []FieldError

// Add appends a rule violation, ignoring exact duplicates
func (e *Errors) Add(field, message string) {
	if e.Has(field, message) {
		return
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether the given violation is already recorded
func (e Errors) Has(field, message string) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Message == message {
			return true
		}
	}
	return false
}

// Messages renders every violation in order
func (e Errors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.String())
	}
	return messages
}

func (e Errors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), " ")
}

// humanize turns an attribute name like "units_available" into "Units available"
func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
