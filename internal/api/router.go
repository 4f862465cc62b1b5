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
	"golang.org/x/time/rate"

	"github.com/vogueline/agency-api/internal/api/handler"
	"github.com/vogueline/agency-api/internal/api/middleware"
	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/infrastructure/http/handlers"
)

// Services are the core ports the HTTP layer drives.
type Services struct {
	Auth       ports.AuthService
	Tokens     ports.TokenIssuer
	Onboarding ports.OnboardingService
	Products   ports.ProductService
	Assets     ports.AssetService
	Accounts   ports.AccountService
	Dashboard  ports.DashboardService
}

// Options tune the router's middleware.
type Options struct {
	Logger      zerolog.Logger
	Cookie      handler.CookieOptions
	CORSOrigins []string
	BodyLimit   string

	// AuthRate and AuthBurst throttle the credential endpoints per client IP.
	AuthRate  rate.Limit
	AuthBurst int

	// Health lists the dependencies checked by /health/ready.
	Health map[string]handlers.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	GateRules *middleware.GateRules
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	rules := middleware.DefaultGateRules()
	if opts.GateRules != nil {
		rules = *opts.GateRules
	}
	registerer, gatherer := opts.Registerer, opts.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "agency",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, handler.IdempotencyHeader},
		AllowCredentials: !allowsAnyOrigin(opts.CORSOrigins),
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	e.Use(middleware.Session(svc.Tokens))
	e.Use(middleware.Gate(rules))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.Cookie)
	onboardingHandler := handler.NewOnboardingHandler(svc.Onboarding)
	productHandler := handler.NewProductHandler(svc.Products)
	assetHandler := handler.NewAssetHandler(svc.Assets)
	userHandler := handler.NewUserHandler(svc.Accounts, opts.Cookie)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)

	throttle := authLimiter(opts.AuthRate, opts.AuthBurst)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/signup", authHandler.Signup, throttle)
	api.POST("/auth/login", authHandler.Login, throttle)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)
	api.POST("/admin-auth", authHandler.AdminAuth, throttle)

	// --- Public submissions ---
	api.POST("/model-applications", onboardingHandler.Apply, throttle)

	// --- Client ---
	client := middleware.RequireRole(domain.KindClient)
	api.POST("/product-requests", productHandler.Submit, client)
	api.GET("/product-requests", productHandler.ListOwn, client)

	// --- Model ---
	api.GET("/model/dashboard", dashboardHandler.Model, middleware.RequireRole(domain.KindModel))

	// --- Any session ---
	api.POST("/upload", assetHandler.Upload)
	api.GET("/assets", assetHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	// --- Admin ---
	admin := api.Group("/admin", middleware.RequireRole(domain.KindAdmin))
	admin.GET("/models", onboardingHandler.List)
	admin.POST("/models", onboardingHandler.Create)
	admin.PATCH("/models", onboardingHandler.Decide)
	admin.GET("/product-requests", productHandler.List)
	admin.GET("/product-requests/export", productHandler.Export)
	admin.GET("/product-requests/:id", productHandler.Get)
	admin.PUT("/product-requests/:id", productHandler.Act)

	// --- Operational ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// authLimiter throttles by client IP. A zero rate disables it.
func authLimiter(r rate.Limit, burst int) echo.MiddlewareFunc {
	if r <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      r,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
