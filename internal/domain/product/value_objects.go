package product

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is a rune count, not a byte count.
const MaxNameLength = 120

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Name{}, ErrEmptyName
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		// Truncate on a rune boundary so a multi-byte character is never split.
		s = string([]rune(s)[:MaxNameLength])
	}
	return Name{value: s}, nil
}

func (n Name) String() string {
	return n.value
}

// Price is an amount in cents. Carts and purchase totals always read the
// current price from the catalog, never a snapshot taken at add time.
type Price struct {
	cents int64
}

func NewPrice(cents int64) (Price, error) {
	if cents < 0 {
		return Price{}, ErrNegativePrice
	}
	return Price{cents: cents}, nil
}

func (p Price) Cents() int64 {
	return p.cents
}

func (p Price) Add(other Price) Price {
	return Price{cents: p.cents + other.cents}
}
