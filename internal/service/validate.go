package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match request fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimal bounds compare exactly; gt/gte/lte would go through float64.
	_ = v.RegisterValidation("decgt", decimalBound(func(c int) bool { return c > 0 }))
	_ = v.RegisterValidation("decgte", decimalBound(func(c int) bool { return c >= 0 }))
	_ = v.RegisterValidation("declte", decimalBound(func(c int) bool { return c <= 0 }))

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// decimalBound builds a validation comparing a decimal field with the tag
// parameter; ok receives the result of field.Cmp(param).
func decimalBound(ok func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, isDecimal := fl.Field().Interface().(decimal.Decimal)
		if !isDecimal {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(d.Cmp(bound))
	}
}

// validateInput checks s against its validate tags and reports failures as
// errs.ErrValidation.
func validateInput(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("campo '%s' inválido (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("campo '%s' inválido (%s)", fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %s", errs.ErrValidation, strings.Join(msgs, "; "))
}

// ParseTasa parses a rate submitted as text and checks 0 < tasa <= 100.
func ParseTasa(s string) (decimal.Decimal, error) {
	tasa, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: la tasa '%s' no es numérica", errs.ErrValidation, s)
	}
	if !tasa.IsPositive() || tasa.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("%w: la tasa debe estar en (0, 100], se recibió %s", errs.ErrValidation, tasa.String())
	}
	return tasa, nil
}

// changes collects the names of fields modified by a patch.
type changes []string

func setField[V comparable](dst *V, v *V, name string, ch *changes) {
	if v == nil || *v == *dst {
		return
	}
	*dst = *v
	*ch = append(*ch, name)
}

func setOptional[V comparable](dst **V, v *V, name string, ch *changes) {
	if v == nil || (*dst != nil && **dst == *v) {
		return
	}
	val := *v
	*dst = &val
	*ch = append(*ch, name)
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal, name string, ch *changes) {
	if v == nil || v.Equal(*dst) {
		return
	}
	*dst = *v
	*ch = append(*ch, name)
}
