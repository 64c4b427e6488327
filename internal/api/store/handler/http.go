package storeHandler

import (
	storeService "LulaiPlatform/internal/api/store/service"
	"LulaiPlatform/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// sessionHeader identifies the anonymous storefront session for cart and
// order routes.
const sessionHeader = "X-Session-ID"

type StoreHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	storeService storeService.IStoreService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss storeService.IStoreService,
) *StoreHandler {
	return &StoreHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		storeService: ss,
	}
}

func (h *StoreHandler) Start(srv fiber.Router) {
	shop := srv.Group("/store")

	shop.Get("/products", h.ListProducts)
	shop.Get("/products/:id", h.GetProduct)

	admin := shop.Group("/admin", h.middleware.NewAdminTokenMiddleware)
	admin.Get("/products", h.ListAllProducts)
	admin.Post("/products", h.CreateProduct)
	admin.Put("/products/:id", h.UpdateProduct)
	admin.Delete("/products/:id", h.DeleteProduct)
	admin.Post("/products/:id/image", h.UploadProductImage)

	shop.Get("/cart", h.GetCart)
	shop.Post("/cart", h.AddCartItem)
	shop.Put("/cart/:itemID", h.UpdateCartItem)
	shop.Delete("/cart/:itemID", h.RemoveCartItem)
	shop.Delete("/cart", h.ClearCart)

	shop.Post("/checkout", h.Checkout)
	shop.Post("/webhook", h.Webhook)
	shop.Get("/orders", h.ListOrders)
	shop.Get("/orders/:id", h.GetOrder)
}
