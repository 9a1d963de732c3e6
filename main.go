package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sagra/admin"
	"sagra/cart"
	"sagra/config"
	"sagra/localstore"
	"sagra/media"
	"sagra/menu"
	"sagra/ratelim"
	"sagra/rdx"
	"sagra/receipt"
	"sagra/routes"
	"sagra/upstream"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, local *localstore.Store, api *upstream.Client, view *admin.OrderView) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	rateLimiter := ratelim.NewRateLimiter()

	catalog := menu.NewCatalog(api, local)
	menuHandlers := menu.NewHandlers(catalog)

	store := cart.NewStore(local)
	checkout := cart.NewCheckout(store, api, local)
	cartHandlers := cart.NewHandlers(store, checkout, catalog, local)

	receiptHandlers := receipt.NewHandlers(api)

	authHandlers := admin.NewAuthHandlers(api, local)
	dishHandlers := admin.NewDishHandlers(api, catalog)
	orderHandlers := admin.NewOrderHandlers(view, api)
	reportHandlers := admin.NewReportHandlers(view)
	uploadHandlers := media.NewHandlers(cfg.UploadDir)

	routes.AddMenuRoutes(router, menuHandlers)
	routes.AddCartRoutes(router, cartHandlers, rateLimiter)
	routes.AddReceiptRoutes(router, receiptHandlers)
	routes.AddAdminRoutes(router, local, rateLimiter, authHandlers, dishHandlers, orderHandlers, reportHandlers, uploadHandlers)
	routes.AddStaticRoutes(router, cfg.UploadDir)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	port := cfg.Port
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	rdx.Init(cfg.RedisAddr)

	local, err := localstore.New(cfg.StateDir)
	if err != nil {
		log.Fatalf("❌ State dir error: %v", err)
	}

	api := upstream.New(cfg.UpstreamURI, local)
	view := admin.NewOrderView(api, local)
	router := setupRouter(cfg, local, api, view)

	// admin views reconcile by polling; the view drops stale responses
	poller := admin.NewPoller(view, time.Duration(cfg.PollEvery)*time.Second)
	pollCtx, stopPolling := context.WithCancel(context.Background())
	go poller.Run(pollCtx)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Stopping order poller...")
		stopPolling()
		poller.Stop()
	})

	go func() {
		log.Printf("🚀 Storefront gateway listening on %s", port)
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

	log.Println("✅ Server stopped cleanly")
}
