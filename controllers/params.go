package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errNotScalar = errors.New("expected a string, number or boolean")

// Param is a scalar request value. Clients may send it as a JSON string,
// number or boolean; numbers and booleans keep their literal text so the
// business rules decide whether "3.5" or "abc" is acceptable.
type Param string

// UnmarshalJSON accepts any JSON scalar
func (p *Param) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return errNotScalar
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Param(s)
	case data[0] == '{' || data[0] == '[':
		return errNotScalar
	default:
		*p = Param(data)
	}
	return nil
}

// String returns the raw value
func (p Param) String() string {
	return string(p)
}

// optional converts an optional param to the services' "nil means not
// sent" form
func optional(p *Param) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

var registerOnce sync.Once

// registerValidators adds the "present" binding tag: a value made only of
// whitespace counts as missing
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("present", present)
		}
	})
}

func present(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
