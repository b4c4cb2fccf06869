package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/douglasalbuquerque/vision-api/api/controllers"
	"github.com/douglasalbuquerque/vision-api/api/middleware"
	"github.com/douglasalbuquerque/vision-api/internal/customers"
	"github.com/douglasalbuquerque/vision-api/internal/matching"
	"github.com/douglasalbuquerque/vision-api/internal/orders"
	"github.com/douglasalbuquerque/vision-api/internal/parts"
	"github.com/douglasalbuquerque/vision-api/internal/pricing"
	"github.com/douglasalbuquerque/vision-api/internal/stores"
	"github.com/douglasalbuquerque/vision-api/pkg/config"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
	"github.com/douglasalbuquerque/vision-api/pkg/metrics"
	"github.com/douglasalbuquerque/vision-api/pkg/redis"
	"github.com/douglasalbuquerque/vision-api/pkg/security"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	verifier *security.CredentialVerifier,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	pricingService pricing.Service,
	matchingService matching.Service,
	storeService stores.Service,
	partsService parts.Service,
	customerService customers.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	// typed nil pointers must not reach the interface parameters below
	var (
		failureCounter middleware.FailureCounter
		redisPinger    controllers.Pinger
	)
	if redisClient != nil {
		failureCounter = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	authPolicy := middleware.BasicAuthPolicy{
		Realm:         cfg.Auth.Realm,
		FailureWindow: cfg.Auth.FailureWindow,
		FailureLimit:  cfg.Auth.FailureLimit,

		TrustProxyHeaders: cfg.Auth.TrustProxyHeaders,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.BasicAuth(verifier, failureCounter, authPolicy, logg))

		r.Post("/prices/batch", controllers.PricesBatch(pricingService, logg))

		r.Post("/stores", controllers.StoreCreate(storeService, logg))

		r.Get("/substrates", controllers.Substrates(partsService, logg))
		r.Get("/finishes", controllers.Finishes(partsService, logg))
		r.Get("/order-statuses", controllers.OrderStatuses(ordersService, logg))
		r.Get("/part-statuses", controllers.PartStatuses(ordersService, logg))

		r.Route("/parts", func(r chi.Router) {
			r.Post("/search2", controllers.PartsSearch(matchingService, logg))
			r.Get("/", controllers.PartList(partsService, logg))
			r.Post("/", controllers.PartCreate(partsService, logg))
			r.Get("/{partId}", controllers.PartDetail(partsService, logg))
			r.Patch("/{partId}/price", controllers.PartUpdatePrice(partsService, logg))
			r.Post("/{partId}/mappings", controllers.MappingCreate(partsService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Get("/{customerId}/stores", controllers.CustomerStores(storeService, logg))
			r.Get("/{customerId}/parts", controllers.CustomerParts(partsService, logg))
			r.Get("/{customerId}/orders", controllers.CustomerOrders(ordersService, logg))
		})

		r.Get("/orders/{orderId}", controllers.OrderDetail(ordersService, logg))
	})

	return r
}
