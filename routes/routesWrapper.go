package routes

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cupcakery/middleware"
	"cupcakery/pages"
	"cupcakery/ratelim"
	"cupcakery/tickets"
)

// Deps are the handlers and guards the storefront routes are built from.
type Deps struct {
	Pages       *pages.Handler
	Sessions    *middleware.Sessions
	RateLimiter *ratelim.RateLimiter
	Printer     *tickets.Printer
	StaticDir   string
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func RoutesWrapper(router *httprouter.Router, d Deps) {
	router.GET("/health", Index)
	AddStaticRoutes(router, d.StaticDir)
	AddMenuRoutes(router, d.Pages, d.Sessions, d.RateLimiter)
	AddCartRoutes(router, d.Pages, d.Sessions, d.RateLimiter)
	AddTicketRoutes(router, d.Printer)
}
