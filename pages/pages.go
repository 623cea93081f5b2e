package pages

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"cupcakery/cart"
	"cupcakery/globals"
	"cupcakery/models"
	"cupcakery/order"
	"cupcakery/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Catalog is the read side of the menu the pages need.
type Catalog interface {
	FetchAll(ctx context.Context) ([]models.MenuItem, error)
	FetchOne(ctx context.Context, id string) (models.MenuItem, error)
}

// Handler serves the storefront pages and the cart actions behind them.
type Handler struct {
	catalog   Catalog
	carts     cart.Persistence
	finalizer *order.Finalizer
	tmpl      *template.Template
}

func NewHandler(catalog Catalog, carts cart.Persistence, finalizer *order.Finalizer) (*Handler, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"price":    func(p models.Price) string { return utils.FormatPrice(p.Decimal) },
		"money":    func(d decimal.Decimal) string { return utils.FormatPrice(d) },
		"yen":      utils.FormatYen,
		"shopName": func() string { return globals.ShopName },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{catalog: catalog, carts: carts, finalizer: finalizer, tmpl: tmpl}, nil
}

// store loads the requesting visitor's cart.
func (h *Handler) store(r *http.Request) *cart.Store {
	s := cart.NewStore(cart.Scoped(h.carts, utils.GetSessionIDFromRequest(r)))
	s.Load(r.Context())
	return s
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s error: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// backTo limits post-action redirects to the two pages that show a cart.
func backTo(r *http.Request) string {
	if r.PostFormValue("redirect") == "/cart" {
		return "/cart"
	}
	return "/"
}
