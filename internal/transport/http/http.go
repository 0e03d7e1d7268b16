package httptransport

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	cartmodel "github.com/jasonsal23/offroad-paracord/internal/service/models/cart"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/order"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/checkoutsvc"
	cartHandler "github.com/jasonsal23/offroad-paracord/internal/transport/http/cart"
	checkoutHandler "github.com/jasonsal23/offroad-paracord/internal/transport/http/checkout"
	orderstatus "github.com/jasonsal23/offroad-paracord/internal/transport/http/order_status"
	ordertracking "github.com/jasonsal23/offroad-paracord/internal/transport/http/order_tracking"
	productsHandler "github.com/jasonsal23/offroad-paracord/internal/transport/http/products"
	"github.com/jasonsal23/offroad-paracord/pkg/http/middleware/idempotency"
	"github.com/jasonsal23/offroad-paracord/pkg/http/middleware/trace"
	"github.com/jasonsal23/offroad-paracord/pkg/logger"
)

//go:embed openapi.json
var openapiDoc []byte

type catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (cartmodel.State, error)
	Add(ctx context.Context, sessionID, productID string, quantity int, primary, secondary string, note *string) (cartmodel.State, error)
	SetQuantity(ctx context.Context, sessionID, productID, primary, secondary string, quantity int) (cartmodel.State, error)
	Remove(ctx context.Context, sessionID, productID, primary, secondary string) (cartmodel.State, error)
	Clear(ctx context.Context, sessionID string) error
}

type checkoutService interface {
	Checkout(ctx context.Context, req checkoutsvc.Request) (*checkoutsvc.Result, error)
}

type orderService interface {
	Status(ctx context.Context, number string) (*order.PublicView, error)
	UpdateTracking(ctx context.Context, number, trackingNumber, carrier, estimatedDelivery string) (*order.Order, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	catalog  catalog
	carts    cartService
	checkout checkoutService
	orders   orderService
}

func NewHTTPTransport(catalog catalog, carts cartService, checkout checkoutService, orders orderService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		catalog:  catalog,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{productID}", h.getProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items", h.updateCartItem)
			r.Delete("/items", h.removeCartItem)
		})

		r.With(idempotency.Middleware).Post("/checkout", h.processCheckout)

		r.Get("/orders/{orderNumber}", h.getOrderStatus)
		r.Patch("/orders/{orderNumber}/tracking", h.updateOrderTracking)
	})

	h.router.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openapiDoc)
	})
	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	productsHandler.List(w, r, h.catalog)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	productsHandler.Get(w, r, h.catalog)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	cartHandler.Get(w, r, h.carts)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	cartHandler.AddItem(w, r, h.carts)
}

func (h *HTTPTransport) updateCartItem(w http.ResponseWriter, r *http.Request) {
	cartHandler.UpdateItem(w, r, h.carts)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartHandler.RemoveItem(w, r, h.carts)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	cartHandler.Clear(w, r, h.carts)
}

func (h *HTTPTransport) processCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutHandler.Checkout(w, r, h.checkout)
}

func (h *HTTPTransport) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderstatus.Status(w, r, h.orders)
}

func (h *HTTPTransport) updateOrderTracking(w http.ResponseWriter, r *http.Request) {
	ordertracking.Update(w, r, h.orders)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
