package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/cache"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/database/postgres"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/generation"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/handlers"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/middleware"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/services"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/templates"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/circuitbreaker"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/db"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/httpclient"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/jwt"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/profiling"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/storage"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/tracing"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/trigger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	uploadsRoute      = "/uploads"
	leadBodyLimit     = 64 * 1024
	refineBodyLimit   = 256 * 1024
	editorBodyLimit   = 5 * 1024 * 1024
	formFieldsAllowed = 1 * 1024 * 1024
	webhookTimeout    = 10 * time.Second
)

type rateLimiters struct {
	general    *middleware.RateLimiter
	auth       *middleware.RateLimiter
	generation *middleware.RateLimiter
	refine     *middleware.RateLimiter
}

func (r rateLimiters) stop() {
	r.general.Stop()
	r.auth.Stop()
	r.generation.Stop()
	r.refine.Stop()
}

type routeHandlers struct {
	health     *handlers.HealthHandler
	auth       *handlers.AuthHandler
	generation *handlers.GenerationHandler
	pages      *handlers.PageHandler
	leads      *handlers.LeadHandler
	refine     *handlers.RefineHandler
	public     *handlers.PublicPageHandler
}

// registerRoutes wires every endpoint onto router
func registerRoutes(router *gin.Engine, cfg *config.Config, tokenManager *jwt.TokenManager, limiters rateLimiters, h routeHandlers) {
	sessionRequired := middleware.UserSessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", limiters.general.Middleware(), h.health.Healthcheck)
	api.GET("/metrics", limiters.general.Middleware(), middleware.TokenAuthMiddleware(cfg.Server.MetricsToken), gin.WrapH(promhttp.Handler()))

	// Lead capture is called by published pages: no session, no rate limit
	api.POST("/leads", middleware.BodySizeLimitMiddleware(leadBodyLimit), h.leads.Create)

	v1 := router.Group("/api/v1")
	v1.POST("/leads", middleware.BodySizeLimitMiddleware(leadBodyLimit), h.leads.Create)

	auth := v1.Group("/auth")
	auth.POST("/register", limiters.auth.Middleware(), middleware.BodySizeLimitMiddleware(leadBodyLimit), h.auth.Register)
	auth.POST("/login", limiters.auth.Middleware(), middleware.BodySizeLimitMiddleware(leadBodyLimit), h.auth.Login)
	auth.POST("/logout", h.auth.Logout)
	auth.GET("/session", sessionRequired, h.auth.GetSession)

	generateLimit := int64(cfg.Generation.MaxPhotos)*cfg.Generation.MaxUploadSizeBytes + formFieldsAllowed

	dashboard := v1.Group("")
	dashboard.Use(sessionRequired)
	dashboard.POST("/generate", limiters.generation.Middleware(), middleware.BodySizeLimitMiddleware(generateLimit), h.generation.Generate)
	dashboard.POST("/refine", limiters.refine.Middleware(), middleware.BodySizeLimitMiddleware(refineBodyLimit), h.refine.Refine)

	pages := dashboard.Group("/pages")
	pages.GET("", limiters.general.Middleware(), h.pages.List)
	pages.GET("/:id", limiters.general.Middleware(), h.pages.Get)
	pages.PUT("/:id", limiters.general.Middleware(), middleware.BodySizeLimitMiddleware(editorBodyLimit), h.pages.Update)
	pages.DELETE("/:id", limiters.general.Middleware(), h.pages.Delete)
	pages.POST("/:id/publish", limiters.general.Middleware(), h.pages.Publish)
	pages.POST("/:id/unpublish", limiters.general.Middleware(), h.pages.Unpublish)
	pages.POST("/:id/regenerate", limiters.generation.Middleware(), h.generation.Regenerate)
	pages.GET("/:id/submissions", limiters.general.Middleware(), h.pages.Submissions)
	pages.GET("/:id/leads", limiters.general.Middleware(), h.leads.ListByPage)

	dashboard.PATCH("/leads/:id/status", limiters.general.Middleware(), middleware.BodySizeLimitMiddleware(leadBodyLimit), h.leads.UpdateStatus)

	// Public landing pages; an owner session enables previews of unpublished pages
	router.GET(middleware.PublicPagePrefix+":id", limiters.general.Middleware(), middleware.OptionalUserSession(tokenManager), h.public.Show)
}

// newAssetStore picks S3-compatible storage when credentials are configured and
// the local upload directory otherwise.
func newAssetStore(cfg *config.Config) (storage.Store, *storage.LocalStore, error) {
	if cfg.UsesObjectStorage() {
		store, err := storage.NewS3Store(storage.S3Config{
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			BucketName:      cfg.Storage.BucketName,
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	local, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Server.BaseURL+uploadsRoute)
	if err != nil {
		return nil, nil, err
	}
	return local, local, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting webinar landing API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Resource{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
	}, cfg.Observability.ExporterEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiling, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiling", zap.Error(err))
	}
	defer stopProfiling()

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// Initialize PostgreSQL connection pool
	// Migrations run separately: ./migrate or docker compose run migrate
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   cfg.Database.MaxConns,
		MinConns:   cfg.Database.MinConns,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	assets, localAssets, err := newAssetStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize asset storage", zap.Error(err))
	}

	templateStore, err := templates.NewStore()
	if err != nil {
		logger.Fatal("Failed to load template bundles", zap.Error(err))
	}

	// Repositories
	pgClient := postgres.NewClient(pool)
	pageCache := cache.NewPageCache(time.Duration(cfg.Cache.PageTTLSeconds) * time.Second)
	pageRepo := repository.NewLandingPageRepository(pgClient, pgClient, pageCache)
	leadRepo := repository.NewLeadRepository(pgClient)
	userRepo := repository.NewUserRepository(pgClient)

	// Completion API client behind a circuit breaker
	openaiConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		openaiConfig.BaseURL = cfg.LLM.BaseURL
	}
	generator := generation.NewClient(
		openai.NewClientWithConfig(openaiConfig),
		circuitbreaker.New(circuitbreaker.DefaultConfig("llm")),
		generation.Config{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			MaxAttempts: cfg.Generation.MaxAttempts,
			BackoffUnit: time.Duration(cfg.Generation.BackoffUnitMillis) * time.Millisecond,
			CallTimeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		},
	)

	notifier := trigger.NewNotifier(httpclient.NewStandardClient(webhookTimeout))

	// Initialize services
	generationService := services.NewGenerationService(pageRepo, generator, templateStore, assets, notifier, cfg)
	pageService := services.NewLandingPageService(pageRepo, pageCache)
	leadService := services.NewLeadService(leadRepo, pageRepo, notifier, cfg)
	refineService := services.NewRefineService(generator, cfg)
	authService := services.NewAuthService(userRepo, cfg)

	// Initialize handlers
	h := routeHandlers{
		health:     handlers.NewHealthHandler(pool.Ping),
		auth:       handlers.NewAuthHandler(authService),
		generation: handlers.NewGenerationHandler(generationService, cfg.Generation.MaxUploadSizeBytes),
		pages:      handlers.NewPageHandler(pageService),
		leads:      handlers.NewLeadHandler(leadService),
		refine:     handlers.NewRefineHandler(refineService),
		public:     handlers.NewPublicPageHandler(pageService),
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the dashboard origins; published pages post leads same-origin
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	limiters := rateLimiters{
		general:    middleware.NewRateLimiter(100, 200), // 100 req/sec, burst of 200
		auth:       middleware.NewRateLimiter(0.2, 5),   // 1 req/5s, burst of 5 (login abuse prevention)
		generation: middleware.NewRateLimiter(0.05, 3),  // 1 req/20s, burst of 3 (completion cost)
		refine:     middleware.NewRateLimiter(0.5, 10),  // 1 req/2s, burst of 10
	}
	defer limiters.stop()

	registerRoutes(router, cfg, authService.GetTokenManager(), limiters, h)

	if localAssets != nil {
		router.Static(uploadsRoute, localAssets.Dir())
		logger.Info("Serving uploads from local disk", zap.String("dir", localAssets.Dir()))
	}

	// Generation runs up to three completion calls, so the write timeout
	// leaves room for every attempt plus backoff.
	writeTimeout := time.Duration(cfg.LLM.TimeoutSeconds*cfg.Generation.MaxAttempts)*time.Second + 30*time.Second

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight webhook calls finish before the pool and logger close
	notifier.Wait(ctx)

	logger.Info("Server exited")
}
