package routes

import (
	"net/http"

	"sagra/admin"
	"sagra/cart"
	"sagra/localstore"
	"sagra/media"
	"sagra/menu"
	"sagra/middleware"
	"sagra/ratelim"
	"sagra/receipt"

	"github.com/julienschmidt/httprouter"
)

func AddMenuRoutes(router *httprouter.Router, h *menu.Handlers) {
	router.GET("/api/menu", h.GetMenu)
	router.GET("/api/menu/categories", h.GetCategories)
	router.GET("/api/menu/pdf", h.MenuPDF)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart", h.AddToCart)
	router.PUT("/api/cart/:id", h.UpdateQuantity)
	router.DELETE("/api/cart/:id", h.RemoveItem)
	router.DELETE("/api/cart", h.ClearCart)

	router.POST("/api/checkout", rl.RateLimit(h.PlaceOrder))
	router.GET("/api/orders/last", h.LastOrder)
}

func AddReceiptRoutes(router *httprouter.Router, h *receipt.Handlers) {
	router.GET("/api/receipt/:id", h.GetReceipt)
	router.GET("/api/receipt/:id/pdf", h.ReceiptPDF)
}

func AddAdminRoutes(
	router *httprouter.Router,
	local *localstore.Store,
	rl *ratelim.RateLimiter,
	auth *admin.AuthHandlers,
	dishes *admin.DishHandlers,
	orders *admin.OrderHandlers,
	reports *admin.ReportHandlers,
	uploads *media.Handlers,
) {
	router.POST("/api/admin/login", rl.RateLimit(auth.Login))
	router.POST("/api/admin/logout", auth.Logout)

	guard := func(h httprouter.Handle) httprouter.Handle {
		return middleware.RequireToken(local, h)
	}

	router.GET("/api/admin/dishes", guard(dishes.ListDishes))
	router.POST("/api/admin/dishes", guard(dishes.CreateDish))
	router.PUT("/api/admin/dishes/:id", guard(dishes.UpdateDish))
	router.DELETE("/api/admin/dishes/:id", guard(dishes.DeleteDish))
	router.POST("/api/admin/dishes/image", guard(uploads.UploadDishImage))

	router.GET("/api/admin/orders", guard(orders.ListOrders))
	router.PATCH("/api/admin/orders/:id/status", guard(orders.UpdateOrderStatus))
	router.POST("/api/admin/orders/:id/print", guard(orders.PrintOrder))

	router.GET("/api/admin/reports/daily", guard(reports.Daily))
}

func AddStaticRoutes(router *httprouter.Router, uploadDir string) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir(uploadDir))
}
