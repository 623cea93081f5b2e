package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MenuItem is one purchasable record of the catalog.
type MenuItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   Price  `json:"price"`
	Comment string `json:"comment,omitempty"`
	Image   *Image `json:"image,omitempty"`
}

// Image is display-only.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Price is an amount in yen. The catalog may send it as a number or as a
// numeric string; it is always written back as a number.
type Price struct {
	decimal.Decimal
}

func NewPrice(v int64) Price {
	return Price{decimal.NewFromInt(v)}
}

// ParsePrice accepts "", "350", "350.5" and similar. Blank input is zero.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{d}, nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = Price{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid price %s: %w", raw, err)
		}
		raw = unquoted
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
