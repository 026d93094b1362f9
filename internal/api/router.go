package api

import (
	"net/http"

	"github.com/ayo6706/payment-instructions/internal/api/handler"
	"github.com/ayo6706/payment-instructions/internal/api/middleware"
	"github.com/ayo6706/payment-instructions/internal/api/spec"
	"github.com/ayo6706/payment-instructions/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Router struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    handler.InstructionProcessor
	idem   middleware.IdempotencyStore
	db     handler.Pinger
	redis  redis.Cmdable
}

// NewRouter wires the HTTP surface. idem, db and redis may be nil when the matching
// backend is not configured.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	svc handler.InstructionProcessor,
	idem middleware.IdempotencyStore,
	db handler.Pinger,
	redisClient redis.Cmdable,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		cfg:    cfg,
		logger: logger,
		svc:    svc,
		idem:   idem,
		db:     db,
		redis:  redisClient,
	}
}

func (api *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(api.logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.RecoverMiddleware(api.logger))

	healthHandler := handler.NewHealthHandler(api.db, api.redis)
	instructionHandler := handler.NewInstructionHandler(api.svc, api.logger)

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", spec.OpenAPIHandler())
	r.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.PublicRateLimiter(api.rateLimit()))
		r.With(middleware.IdempotencyMiddleware(api.idem, api.logger)).
			Post("/payment-instructions", instructionHandler.ProcessInstruction)
	})

	return r
}

func (api *Router) rateLimit() int {
	if api.cfg == nil || api.cfg.RateLimitRPS <= 0 {
		return 50
	}
	return api.cfg.RateLimitRPS
}
