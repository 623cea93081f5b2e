package models

// CartLine is one purchased unit: a full copy of the menu record.
// A cart is an ordered []CartLine where a repeated ID means a repeated purchase.
type CartLine MenuItem

func NewCartLine(item MenuItem) CartLine {
	return CartLine(item)
}

func (l CartLine) Item() MenuItem {
	return MenuItem(l)
}
