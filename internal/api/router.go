package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/unrolled/secure"
	"golang.org/x/time/rate"

	_ "github.com/inkwell/blog-api/docs"
	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth        ports.AuthService
	Posts       ports.PostService
	Tokens      middleware.AccessTokenParser
	Idempotency ports.IdempotencyStore
	Checks      map[string]handler.Check
	Logger      zerolog.Logger

	// Registry defaults to the global prometheus registry.
	Registry *prometheus.Registry

	CORSOrigin     string
	LoginRateLimit float64
	Production     bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echo.WrapMiddleware(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      !d.Production,
	}).Handler))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderIdempotencyKey},
	}))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
		if err := metrics.Register(d.Registry); err != nil {
			panic(err)
		}
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "blog",
		Registerer: registerer,
	}))

	idempotent := middleware.Idempotency(d.Idempotency, d.Logger)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, idempotent)
	auth.POST("/login", authHandler.Login, loginLimiter(d.LoginRateLimit))
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, middleware.Auth(d.Tokens))
	auth.GET("", authHandler.List)
	auth.GET("/:id", authHandler.Get)
	auth.PUT("/:id", authHandler.Update)
	auth.DELETE("/:id", authHandler.Delete)

	// --- Post routes ---
	postHandler := handler.NewPostHandler(d.Posts)
	posts := e.Group("/posts")
	posts.POST("", postHandler.Create, idempotent)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// loginLimiter allows perSecond login attempts per client IP with a burst of
// twice that.
func loginLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond * 2)
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}
