// AngelaMos | 2026
// page.go

package filter

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

const (
	DefaultSkip = 0
	DefaultTake = 10
	MaxTake     = 100
)

type Page struct {
	Skip uint64
	Take uint64
}

type Limits struct {
	DefaultTake int
	MaxTake     int
}

func DefaultLimits() Limits {
	return Limits{DefaultTake: DefaultTake, MaxTake: MaxTake}
}

// Page resolves optional skip/take. Out of range values are rejected,
// never clamped.
func (l Limits) Page(skip, take *int) (Page, error) {
	s, t := DefaultSkip, l.DefaultTake

	var fields []core.FieldError

	if skip != nil {
		if *skip < 0 {
			fields = append(fields, core.FieldError{
				Field:   "skip",
				Message: "must be greater than or equal to 0",
			})
		}
		s = *skip
	}

	if take != nil {
		switch {
		case *take < 0:
			fields = append(fields, core.FieldError{
				Field:   "take",
				Message: "must be greater than or equal to 0",
			})
		case *take > l.MaxTake:
			fields = append(fields, core.FieldError{
				Field:   "take",
				Message: fmt.Sprintf("must be less than or equal to %d", l.MaxTake),
			})
		}
		t = *take
	}

	if len(fields) > 0 {
		return Page{}, core.ValidationError("Validation error", fields...)
	}

	return Page{Skip: uint64(s), Take: uint64(t)}, nil //nolint:gosec // G115: checked non-negative above
}

func (p Page) Apply(q sq.SelectBuilder) sq.SelectBuilder {
	return q.Offset(p.Skip).Limit(p.Take)
}
