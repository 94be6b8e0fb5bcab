// AngelaMos | 2026
// builder.go

package filter

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

type DateRange struct {
	Gte *time.Time
	Lte *time.Time
}

func (r DateRange) IsZero() bool {
	return r.Gte == nil && r.Lte == nil
}

// Builder accumulates predicates for a list query. The ownership predicate
// is fixed at construction and cannot be removed.
type Builder struct {
	where sq.And
	err   error
}

func Owned(column, userID string) *Builder {
	return &Builder{where: sq.And{sq.Eq{column: userID}}}
}

func OwnedBy(ownership sq.Sqlizer) *Builder {
	return &Builder{where: sq.And{ownership}}
}

func (b *Builder) Contains(column string, value *string) *Builder {
	if value == nil {
		return b
	}
	b.where = append(b.where, sq.Like{column: "%" + escapeLike(*value) + "%"})
	return b
}

func (b *Builder) Range(column, field string, r DateRange) *Builder {
	if r.Gte != nil && r.Lte != nil && r.Gte.After(*r.Lte) {
		if b.err == nil {
			b.err = core.InvalidDateRangeError(field)
		}
		return b
	}

	if r.Gte != nil {
		b.where = append(b.where, sq.GtOrEq{column: *r.Gte})
	}
	if r.Lte != nil {
		b.where = append(b.where, sq.LtOrEq{column: *r.Lte})
	}
	return b
}

func (b *Builder) Build() (sq.And, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.where, nil
}

// Equal adds an exact-match predicate when value is present.
func Equal[T any](b *Builder, column string, value *T) *Builder {
	if value == nil {
		return b
	}
	b.where = append(b.where, sq.Eq{column: *value})
	return b
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
