package cart

import (
	"github.com/shopspring/decimal"

	"cupcakery/models"
)

// taxRate is the fixed consumption tax multiplier.
var taxRate = decimal.RequireFromString("1.10")

// GroupedEntry is a menu item with the number of times it was bought.
type GroupedEntry struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

func (e GroupedEntry) LineTotal() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Group folds lines by id. The first occurrence decides position and
// display attributes.
func Group(lines []models.CartLine) []GroupedEntry {
	index := make(map[string]int, len(lines))
	entries := make([]GroupedEntry, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ID]; ok {
			entries[i].Quantity++
			continue
		}
		index[l.ID] = len(entries)
		entries = append(entries, GroupedEntry{Item: l.Item(), Quantity: 1})
	}
	return entries
}

// Subtotal is the sum of price * quantity.
func Subtotal(entries []GroupedEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.LineTotal())
	}
	return sum
}

// TotalWithTax is floor(subtotal * 1.10).
func TotalWithTax(subtotal decimal.Decimal) int64 {
	return subtotal.Mul(taxRate).Floor().IntPart()
}

// Count is the number of units across all entries.
func Count(entries []GroupedEntry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}

// Summary is what the pages and /api/cart show for a cart.
type Summary struct {
	Entries  []GroupedEntry `json:"entries"`
	Subtotal models.Price   `json:"subtotal"`
	Total    int64          `json:"total"`
	Count    int            `json:"count"`
}

func Summarize(lines []models.CartLine) Summary {
	entries := Group(lines)
	sub := Subtotal(entries)
	return Summary{
		Entries:  entries,
		Subtotal: models.Price{Decimal: sub},
		Total:    TotalWithTax(sub),
		Count:    Count(entries),
	}
}

func (s Summary) Empty() bool {
	return len(s.Entries) == 0
}
