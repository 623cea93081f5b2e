package menu

import (
	"fmt"
	"sort"

	"cupcakery/models"
)

func checkItem(it models.MenuItem) error {
	if it.Price.IsNegative() {
		return fmt.Errorf("%w: item %s has negative price %s", ErrUnavailable, it.ID, it.Price.String())
	}
	return nil
}

// SortByPriceDesc orders items by price, highest first. Equal prices keep
// catalog order.
func SortByPriceDesc(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price.GreaterThan(items[j].Price.Decimal)
	})
}
