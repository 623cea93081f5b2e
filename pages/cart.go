package pages

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"slices"

	"github.com/julienschmidt/httprouter"

	"cupcakery/cart"
	"cupcakery/checkout"
	"cupcakery/models"
	"cupcakery/order"
	"cupcakery/tickets"
	"cupcakery/utils"
)

type cartPage struct {
	Title          string
	Cart           cart.Summary
	Form           checkout.Form
	Errors         checkout.Errors
	PaymentMethods []models.PaymentMethod
}

func (h *Handler) cartPage(lines []models.CartLine, form checkout.Form, errs checkout.Errors) cartPage {
	return cartPage{
		Title:          "カート",
		Cart:           cart.Summarize(lines),
		Form:           form,
		Errors:         errs,
		PaymentMethods: models.PaymentMethods,
	}
}

// Cart handles GET /cart
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := h.store(r)
	h.render(w, http.StatusOK, "cart.html", h.cartPage(s.Lines(), checkout.NewForm(), nil))
}

// Increment handles POST /cart/items/:id/increment
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	s := h.store(r)

	lines := s.Lines()
	if i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == id }); i >= 0 {
		s.AddOne(r.Context(), lines[i].Item())
	} else {
		item, err := h.catalog.FetchOne(r.Context(), id)
		data := newConfirmPage(1)
		if status, ok := h.itemError(err, &data); !ok {
			h.render(w, status, "confirm.html", data)
			return
		}
		s.AddOne(r.Context(), item)
	}

	utils.RedirectSeeOther(w, r, backTo(r))
}

// Decrement handles POST /cart/items/:id/decrement
func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.store(r).RemoveOne(r.Context(), ps.ByName("id"))
	utils.RedirectSeeOther(w, r, backTo(r))
}

// Clear handles POST /cart/clear
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.store(r).Clear(r.Context())
	utils.RedirectSeeOther(w, r, backTo(r))
}

// PlaceOrder handles POST /cart/order
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := checkout.FormFromValues(r.PostForm)
	s := h.store(r)

	o, err := h.finalizer.Finalize(r.Context(), form, s)
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		h.render(w, http.StatusUnprocessableEntity, "cart.html", h.cartPage(s.Lines(), form, form.Validate()))
		return
	case errors.Is(err, order.ErrEmptyCart):
		utils.RedirectSeeOther(w, r, "/cart")
		return
	case err != nil:
		log.Printf("PlaceOrder error: %v", err)
		http.Error(w, "Order failed", http.StatusInternalServerError)
		return
	}

	utils.RedirectSeeOther(w, r, "/thanks?order="+url.QueryEscape(o.OrderNumber))
}

type thanksPage struct {
	Title       string
	OrderNumber string
	Valid       bool
}

// Thanks handles GET /thanks?order=ORD-xxxxxx
func (h *Handler) Thanks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orderNumber := r.URL.Query().Get("order")
	h.render(w, http.StatusOK, "thanks.html", thanksPage{
		Title:       "ご注文ありがとうございます",
		OrderNumber: orderNumber,
		Valid:       tickets.ValidOrderNumber(orderNumber),
	})
}

// CartSummary handles GET /api/cart
func (h *Handler) CartSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, cart.Summarize(h.store(r).Lines()))
}

type validateResponse struct {
	Form   checkout.Form   `json:"form"`
	Errors checkout.Errors `json:"errors"`
	OK     bool            `json:"ok"`
}

// ValidateCheckout handles POST /api/checkout/validate[?field=phone]. It is
// called on every keystroke and returns the sanitized form with its errors.
func (h *Handler) ValidateCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var form checkout.Form
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	form.Sanitize()

	fields := checkout.AllFields
	if f := checkout.Field(r.URL.Query().Get("field")); slices.Contains(checkout.AllFields, f) {
		fields = []checkout.Field{f}
	}
	errs := form.ValidateFields(fields...)

	utils.RespondWithJSON(w, http.StatusOK, validateResponse{Form: form, Errors: errs, OK: errs.OK()})
}
