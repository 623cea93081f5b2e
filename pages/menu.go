package pages

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"cupcakery/cart"
	"cupcakery/menu"
	"cupcakery/models"
	"cupcakery/utils"
)

// maxQuantity bounds a single add from the confirm page.
const maxQuantity = 99

const (
	msgMenuUnavailable = "メニューを読み込めませんでした。時間をおいて再度お試しください。"
	msgItemUnavailable = "商品情報を読み込めませんでした。時間をおいて再度お試しください。"
)

type menuPage struct {
	Title string
	Items []models.MenuItem
	Cart  cart.Summary
	Error string
}

// Menu handles GET /
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data := menuPage{
		Title: "メニュー",
		Cart:  cart.Summarize(h.store(r).Lines()),
	}

	status := http.StatusOK
	items, err := h.catalog.FetchAll(r.Context())
	if err != nil {
		log.Printf("Menu fetch error: %v", err)
		data.Error = msgMenuUnavailable
		status = http.StatusBadGateway
	}
	data.Items = items

	h.render(w, status, "menu.html", data)
}

type confirmPage struct {
	Title       string
	Item        models.MenuItem
	Quantity    int
	MaxQuantity int
	NotFound    bool
	Error       string
}

func newConfirmPage(quantity int) confirmPage {
	return confirmPage{Title: "注文確認", Quantity: quantity, MaxQuantity: maxQuantity}
}

// parseQuantity reads the quantity field, clamped to 1..maxQuantity.
func parseQuantity(v string) int {
	q, err := strconv.Atoi(v)
	if err != nil || q < 1 {
		return 1
	}
	return min(q, maxQuantity)
}

// Confirm handles GET /confirm/:id
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	data := newConfirmPage(1)

	item, err := h.catalog.FetchOne(r.Context(), ps.ByName("id"))
	if status, ok := h.itemError(err, &data); !ok {
		h.render(w, status, "confirm.html", data)
		return
	}
	data.Item = item

	h.render(w, http.StatusOK, "confirm.html", data)
}

// AddToCart handles POST /confirm/:id. The item is read from the catalog
// again so that the stored price never comes from the browser.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	quantity := parseQuantity(r.PostFormValue("quantity"))

	item, err := h.catalog.FetchOne(r.Context(), ps.ByName("id"))
	data := newConfirmPage(quantity)
	if status, ok := h.itemError(err, &data); !ok {
		h.render(w, status, "confirm.html", data)
		return
	}

	if added := h.store(r).Add(r.Context(), item, quantity); added < quantity {
		log.Printf("AddToCart %s: cart full, added %d of %d", item.ID, added, quantity)
	}
	utils.RedirectSeeOther(w, r, "/")
}

// itemError maps a catalog error onto the confirm page state.
func (h *Handler) itemError(err error, data *confirmPage) (int, bool) {
	switch {
	case err == nil:
		return http.StatusOK, true
	case errors.Is(err, menu.ErrNotFound):
		data.NotFound = true
		return http.StatusNotFound, false
	default:
		log.Printf("Menu item fetch error: %v", err)
		data.Error = msgItemUnavailable
		return http.StatusBadGateway, false
	}
}
