// AngelaMos | 2026
// query.go

package filter

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

const dateOnly = "2006-01-02"

// QueryParser reads optional filter values from a query string and collects
// every malformed value instead of stopping at the first.
type QueryParser struct {
	values url.Values
	errs   []core.FieldError
}

func NewQueryParser(values url.Values) *QueryParser {
	return &QueryParser{values: values}
}

func (p *QueryParser) String(key string) *string {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func (p *QueryParser) Int(key string) *int {
	raw := p.String(key)
	if raw == nil {
		return nil
	}

	n, err := strconv.Atoi(*raw)
	if err != nil {
		p.fail(key, "must be an integer")
		return nil
	}
	return &n
}

func (p *QueryParser) Decimal(key string) *decimal.Decimal {
	raw := p.String(key)
	if raw == nil {
		return nil
	}

	d, err := decimal.NewFromString(*raw)
	if err != nil {
		p.fail(key, "must be a number")
		return nil
	}
	return &d
}

func (p *QueryParser) Time(key string) *time.Time {
	raw := p.String(key)
	if raw == nil {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, *raw); err == nil {
		return &t
	}
	if t, err := time.Parse(dateOnly, *raw); err == nil {
		return &t
	}

	p.fail(key, "must be an ISO-8601 date")
	return nil
}

func (p *QueryParser) OneOf(key string, allowed ...string) *string {
	raw := p.String(key)
	if raw == nil {
		return nil
	}

	if !slices.Contains(allowed, *raw) {
		p.fail(key, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
		return nil
	}
	return raw
}

func (p *QueryParser) DateRange(prefix string) DateRange {
	return DateRange{
		Gte: p.Time("gte" + prefix),
		Lte: p.Time("lte" + prefix),
	}
}

func (p *QueryParser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return core.ValidationError("Validation error", p.errs...)
}

func (p *QueryParser) fail(key, message string) {
	p.errs = append(p.errs, core.FieldError{Field: key, Message: message})
}
