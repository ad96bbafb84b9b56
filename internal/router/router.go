package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/healthapp-api/internal/middleware"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
	"github.com/jwalitptl/healthapp-api/pkg/httputil"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

// Handler mounts authenticated routes.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AuthMiddleware)
}

// PublicHandler mounts registration and login; limiter throttles the logins.
type PublicHandler interface {
	RegisterRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc)
}

// OpsHandler mounts health and metrics endpoints.
type OpsHandler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	public   PublicHandler
	ops      OpsHandler
	handlers []Handler
	limiter  *middleware.RateLimiter
}

type RouterConfig struct {
	RateLimit      rate.Limit
	RateBurst      int
	RateIdleExpiry time.Duration
	CORSConfig     middleware.CORSConfig
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	public PublicHandler,
	ops OpsHandler,
	handlers []Handler,
	m *metrics.Metrics,
	logger zerolog.Logger,
	config RouterConfig,
) *Router {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.MaxBodyBytes),
		middleware.Metrics(m),
		middleware.Timeout(config.RequestTimeout),
		middleware.Compress(middleware.DefaultCompressConfig()),
	)

	engine.NoRoute(func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NotFound("route", nil))
	})
	engine.NoMethod(func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NotFound("route", nil))
	})

	return &Router{
		engine:   engine,
		auth:     auth,
		public:   public,
		ops:      ops,
		handlers: handlers,
		limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:       config.RateLimit,
			Burst:      config.RateBurst,
			IdleExpiry: config.RateIdleExpiry,
		}),
	}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.ops.RegisterRoutes(api)

	app := api.Group("", middleware.Cache(middleware.NoStoreCacheConfig()))
	r.public.RegisterRoutes(app, r.limiter.RateLimit())
	for _, h := range r.handlers {
		h.RegisterRoutes(app, r.auth)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
