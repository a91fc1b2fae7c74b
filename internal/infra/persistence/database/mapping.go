package database

import (
	"strings"

	"github.com/shopspring/decimal"
)

// nullIfBlank maps blank text to NULL.
func nullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal

	return &v
}

// matchesAll reports whether a filter value leaves the column unconstrained.
func matchesAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

func likeContains(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}

// likeAny builds a case-sensitive OR of LIKE predicates over columns, one
// placeholder per column.
func likeAny(columns ...string) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+` LIKE ? ESCAPE '\'`)
	}

	return "(" + strings.Join(parts, " OR ") + ")"
}

func repeatArg(v any, n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = v
	}

	return args
}
