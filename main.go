package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cupcakery/cart"
	"cupcakery/config"
	"cupcakery/db"
	"cupcakery/menu"
	"cupcakery/middleware"
	"cupcakery/order"
	"cupcakery/pages"
	"cupcakery/ratelim"
	"cupcakery/rdx"
	"cupcakery/routes"
	"cupcakery/tickets"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		// menu images come from the CMS image host; the cart page carries one inline script
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; img-src 'self' https: data:; script-src 'self' 'unsafe-inline'; style-src 'self'; object-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// cart contents are per visitor
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// openCarts connects the configured cart backend. The returned func closes it.
func openCarts(ctx context.Context, cfg config.Config) (cart.Persistence, func(context.Context), error) {
	switch cfg.CartBackend {
	case config.BackendRedis:
		client, err := rdx.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return rdx.NewPersistence(client, "cupcakery:", cfg.CartTTL), func(context.Context) {
			if err := client.Close(); err != nil {
				log.Printf("Redis close error: %v", err)
			}
		}, nil

	case config.BackendMongo:
		client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureIndexes(ctx, db.CartCollection, cfg.CartTTL); err != nil {
			log.Printf("Cart index error: %v", err)
		}
		return db.NewPersistence(db.CartCollection), func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Printf("MongoDB disconnect error: %v", err)
			}
		}, nil
	}

	log.Println("⚠️ Using in-memory carts; they are lost on restart")
	return cart.NewMemoryPersistence(), func(context.Context) {}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	carts, closeCarts, err := openCarts(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatalf("❌ Cart store error: %v", err)
	}

	catalog := menu.NewClient(cfg.MenuBaseURL, cfg.MenuAPIKey, menu.WithTimeout(cfg.MenuTimeout))
	finalizer := order.NewFinalizer(
		order.WithPhoneCheck(cfg.RequirePhone),
		order.WithEmptyCart(cfg.AllowEmptyCartOrders),
	)
	pageHandler, err := pages.NewHandler(catalog, carts, finalizer)
	if err != nil {
		log.Fatalf("❌ Template error: %v", err)
	}

	router := httprouter.New()
	routes.RoutesWrapper(router, routes.Deps{
		Pages:       pageHandler,
		Sessions:    middleware.NewSessions(cfg.SessionSecret),
		RateLimiter: ratelim.NewRateLimiter(60, 20),
		Printer:     tickets.NewPrinter(cfg.SessionSecret),
		StaticDir:   "static",
	})

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	closeCarts(ctx)

	log.Println("✅ Server stopped cleanly")
}
