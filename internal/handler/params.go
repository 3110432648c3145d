package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

// queryParams parses optional filters, keeping the first error.
type queryParams struct {
	values url.Values
	err    error
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) invalid(name, raw string) {
	if q.err == nil {
		q.err = fmt.Errorf("%w: parámetro '%s' inválido: '%s'", errs.ErrValidation, name, raw)
	}
}

func (q *queryParams) str(name string) string {
	return q.values.Get(name)
}

func (q *queryParams) id(name string) *uint {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		q.invalid(name, raw)
		return nil
	}
	id := uint(v)
	return &id
}

func (q *queryParams) integer(name string) int {
	raw := q.values.Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.invalid(name, raw)
		return 0
	}
	return v
}

func (q *queryParams) amount(name string) *decimal.Decimal {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		q.invalid(name, raw)
		return nil
	}
	return &d
}

// since parses a lower bound. A plain date means the start of that day.
func (q *queryParams) since(name string) *time.Time {
	return q.date(name, false)
}

// until parses an upper bound. A plain date includes the whole day.
func (q *queryParams) until(name string) *time.Time {
	return q.date(name, true)
}

// date accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func (q *queryParams) date(name string, endOfDay bool) *time.Time {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t
	}
	q.invalid(name, raw)
	return nil
}
