package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cupcakery/middleware"
	"cupcakery/pages"
	"cupcakery/ratelim"
	"cupcakery/tickets"
)

func AddStaticRoutes(router *httprouter.Router, dir string) {
	router.ServeFiles("/static/*filepath", http.Dir(dir))
}

func AddMenuRoutes(router *httprouter.Router, h *pages.Handler, s *middleware.Sessions, rl *ratelim.RateLimiter) {
	router.GET("/", s.Attach(h.Menu))
	router.GET("/confirm/:id", s.Attach(h.Confirm))
	router.POST("/confirm/:id", rl.Limit(s.Attach(h.AddToCart)))
}

func AddCartRoutes(router *httprouter.Router, h *pages.Handler, s *middleware.Sessions, rl *ratelim.RateLimiter) {
	router.GET("/cart", s.Attach(h.Cart))
	router.POST("/cart/items/:id/increment", rl.Limit(s.Attach(h.Increment)))
	router.POST("/cart/items/:id/decrement", rl.Limit(s.Attach(h.Decrement)))
	router.POST("/cart/clear", rl.Limit(s.Attach(h.Clear)))
	router.POST("/cart/order", rl.Limit(s.Attach(h.PlaceOrder)))
	router.GET("/thanks", h.Thanks)

	router.GET("/api/cart", s.Attach(h.CartSummary))
	router.POST("/api/checkout/validate", h.ValidateCheckout)
}

func AddTicketRoutes(router *httprouter.Router, p *tickets.Printer) {
	router.GET("/thanks/qr.png", p.ServeQR)
	router.GET("/thanks/slip.pdf", p.PrintSlip)
	router.GET("/api/pickup/verify", p.VerifyPickup)
}
