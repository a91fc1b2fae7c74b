// Package sequence describes how human readable identifiers are laid out.
// Allocation itself happens in repository.SequenceRepository.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidGroupCode is returned for group codes that are not exactly two characters.
	ErrInvalidGroupCode = errors.New("group code must be exactly two characters")
	// ErrExhausted is returned when the next value no longer fits the suffix width.
	ErrExhausted = errors.New("sequence exhausted")
)

const dateLayout = "20060102"

// Layout selects the shape of an identifier.
type Layout int

const (
	// Dated identifiers look like <prefix>-<YYYYMMDD>-<NNNN>.
	Dated Layout = iota
	// Grouped identifiers look like <GG><NNNN>.
	Grouped
	// Serial identifiers are a bare zero-padded number.
	Serial
)

// Scheme is the identifier layout of one entity table.
type Scheme struct {
	Scope  string // Table scope the counters belong to.
	Prefix string
	Width  int
	Layout Layout
	Zone   *time.Location // Date bucket timezone, Dated only.
}

// Key is one independent counter: a scope plus the literal prefix every
// identifier in the bucket starts with.
type Key struct {
	Scope  string
	Prefix string
	Width  int
}

// At returns the counter key of a Dated or Serial scheme at instant now.
func (s Scheme) At(now time.Time) Key {
	if s.Layout != Dated {
		return Key{Scope: s.Scope, Prefix: s.Prefix, Width: s.Width}
	}

	zone := s.Zone
	if zone == nil {
		zone = time.UTC
	}

	return Key{
		Scope:  s.Scope,
		Prefix: fmt.Sprintf("%s-%s-", s.Prefix, now.In(zone).Format(dateLayout)),
		Width:  s.Width,
	}
}

// Group returns the counter key of a Grouped scheme for the given group code.
func (s Scheme) Group(code string) (Key, error) {
	if !ValidGroupCode(code) {
		return Key{}, errors.Wrapf(ErrInvalidGroupCode, "%q", code)
	}

	return Key{Scope: s.Scope, Prefix: code, Width: s.Width}, nil
}

// ValidGroupCode reports whether code can prefix item identifiers.
func ValidGroupCode(code string) bool {
	return utf8.RuneCountInString(code) == 2 && strings.TrimSpace(code) == code
}

// Max is the largest suffix the key can hold.
func (k Key) Max() int64 {
	limit := int64(1)
	for range k.Width {
		limit *= 10
	}

	return limit - 1
}

// Format renders the identifier carrying suffix n.
func (k Key) Format(n int64) (string, error) {
	if n < 1 || n > k.Max() {
		return "", errors.Wrapf(ErrExhausted, "%s suffix %d does not fit %d digits", k.Prefix, n, k.Width)
	}

	return fmt.Sprintf("%s%0*d", k.Prefix, k.Width, n), nil
}

// Suffix extracts the numeric suffix of id. It reports false when id does
// not belong to the key's bucket.
func (k Key) Suffix(id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, k.Prefix)
	if !ok || len(rest) != k.Width {
		return 0, false
	}

	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// KeyOf returns the counter key of the bucket id belongs to, whatever day
// a Dated id was issued on. It reports false when id does not have the
// scheme's shape or carries a zero suffix.
func (s Scheme) KeyOf(id string) (Key, bool) {
	var key Key
	switch s.Layout {
	case Dated:
		rest, ok := strings.CutPrefix(id, s.Prefix+"-")
		if !ok || len(rest) < len(dateLayout)+1 || rest[len(dateLayout)] != '-' {
			return Key{}, false
		}
		if _, err := time.Parse(dateLayout, rest[:len(dateLayout)]); err != nil {
			return Key{}, false
		}
		key = Key{Scope: s.Scope, Prefix: s.Prefix + "-" + rest[:len(dateLayout)+1], Width: s.Width}
	case Grouped:
		runes := []rune(id)
		if len(runes) <= 2 {
			return Key{}, false
		}
		var err error
		if key, err = s.Group(string(runes[:2])); err != nil {
			return Key{}, false
		}
	default:
		key = Key{Scope: s.Scope, Prefix: s.Prefix, Width: s.Width}
	}

	if n, ok := key.Suffix(id); !ok || n < 1 {
		return Key{}, false
	}

	return key, true
}

// Schemes holds the identifier scheme of every module.
type Schemes struct {
	Customer   Scheme
	Biller     Scheme
	Supplier   Scheme
	Ledger     Scheme
	RewardRule Scheme
	Item       Scheme
	Voucher    Scheme
}

// NewSchemes builds the module schemes. Business dates are bucketed in zone;
// biller ids always use UTC.
func NewSchemes(zone *time.Location) *Schemes {
	return &Schemes{
		Customer:   Scheme{Scope: "customers", Prefix: "C", Width: 4, Layout: Dated, Zone: zone},
		Biller:     Scheme{Scope: "billers", Prefix: "B", Width: 4, Layout: Dated, Zone: time.UTC},
		Supplier:   Scheme{Scope: "suppliers", Prefix: "S", Width: 4, Layout: Dated, Zone: zone},
		Ledger:     Scheme{Scope: "rewards_ledger", Prefix: "RL", Width: 4, Layout: Dated, Zone: zone},
		RewardRule: Scheme{Scope: "reward_rules", Prefix: "RW", Width: 4, Layout: Dated, Zone: zone},
		Item:       Scheme{Scope: "items", Width: 4, Layout: Grouped},
		Voucher:    Scheme{Scope: "vouchers", Width: 10, Layout: Serial},
	}
}
