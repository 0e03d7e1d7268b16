package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/icartrepo"
	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/iorderrepo"
	"github.com/jasonsal23/offroad-paracord/internal/dal/postgres"
	"github.com/jasonsal23/offroad-paracord/internal/dal/rabbitmq"
	"github.com/jasonsal23/offroad-paracord/internal/dal/redis"
	cartmemory "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/cart/memory"
	cartredis "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/cart/redis"
	catalogrepo "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/catalog"
	ordermemory "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/order/memory"
	orderpostgres "github.com/jasonsal23/offroad-paracord/internal/dal/repositories/order/postgres"
	"github.com/jasonsal23/offroad-paracord/internal/dal/square"
	"github.com/jasonsal23/offroad-paracord/internal/events"
	"github.com/jasonsal23/offroad-paracord/internal/otel"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/cartsvc"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/checkoutsvc"
	"github.com/jasonsal23/offroad-paracord/internal/service/services/ordersvc"
	httptransport "github.com/jasonsal23/offroad-paracord/internal/transport/http"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	otelController *otel.OtelController
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	app := &App{}

	if viper.GetBool("tracing.enabled") {
		app.otelController = otel.MustInitOtel()
	}

	var orders iorderrepo.IOrderRepository
	switch viper.GetString("storage.order_driver") {
	case "postgres":
		app.postgresClient = postgres.MustNewClient()
		orders = orderpostgres.NewRepository(app.postgresClient.Pool())
	default:
		orders = ordermemory.NewRepository()
	}

	var carts icartrepo.ICartRepository
	switch viper.GetString("storage.cart_driver") {
	case "redis":
		app.redisClient = redis.MustNewClient()
		carts = cartredis.NewRepository(app.redisClient)
	default:
		carts = cartmemory.NewRepository()
	}

	catalog := catalogrepo.NewRepository()

	var publisher events.Publisher
	if viper.GetBool("rabbitmq.enabled") {
		app.rabbitClient = rabbitmq.MustNewClient()
		p, err := events.NewRabbitPublisher(app.rabbitClient)
		if err != nil {
			panic("failed to set up event publisher: " + err.Error())
		}
		publisher = p
	}

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithCartRepository(carts),
		cartsvc.WithCatalog(catalog),
	)

	checkoutSvc := checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithOrderRepository(orders),
		checkoutsvc.WithProcessor(square.NewClient()),
		checkoutsvc.WithPublisher(publisher),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orders),
		ordersvc.WithPublisher(publisher),
	)

	transport := httptransport.NewHTTPTransport(catalog, cartSvc, checkoutSvc, orderSvc)
	transport.RegisterRoutes()
	app.transport = transport

	return app
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.Error("Redis connection close error", "error", err)
		} else {
			slog.Info("Redis connection closed gracefully")
		}
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.otelController != nil {
		if err := a.otelController.Shutdown(); err != nil {
			slog.Error("Trace provider shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
