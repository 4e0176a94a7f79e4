package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alphafarm/config"
	"alphafarm/database"
	"alphafarm/entities"
	"alphafarm/pkg/catalog"
	"alphafarm/pkg/event"
	"alphafarm/pkg/httperr"
	"alphafarm/pkg/logging"
	"alphafarm/pkg/metrics"
	"alphafarm/pkg/middleware"
	"alphafarm/router"

	// Auth
	authCtrlImp "alphafarm/pkg/auth/controllerImp"
	"alphafarm/pkg/auth/otp"
	authRepoImp "alphafarm/pkg/auth/repositoryImp"
	authSvcImp "alphafarm/pkg/auth/serviceImp"
	"alphafarm/pkg/auth/token"

	// Farmer / land / plan
	farmerCtrlImp "alphafarm/pkg/farmer/controllerImp"
	farmerRepoImp "alphafarm/pkg/farmer/repositoryImp"
	farmerSvcImp "alphafarm/pkg/farmer/serviceImp"
	landCtrlImp "alphafarm/pkg/land/controllerImp"
	landRepoImp "alphafarm/pkg/land/repositoryImp"
	landSvcImp "alphafarm/pkg/land/serviceImp"
	planCtrlImp "alphafarm/pkg/plan/controllerImp"
	planRepoImp "alphafarm/pkg/plan/repositoryImp"
	planSvcImp "alphafarm/pkg/plan/serviceImp"

	// Admin / news
	adminCtrlImp "alphafarm/pkg/admin/controllerImp"
	adminRepoImp "alphafarm/pkg/admin/repositoryImp"
	adminSvcImp "alphafarm/pkg/admin/serviceImp"
	newsCtrlImp "alphafarm/pkg/news/controllerImp"
	newsRepoImp "alphafarm/pkg/news/repositoryImp"
	"alphafarm/pkg/news/scrape"
	newsSvcImp "alphafarm/pkg/news/serviceImp"

	// Yield / location / health
	locationCtrlImp "alphafarm/pkg/location/controllerImp"
	"alphafarm/pkg/location/lookup"
	locationRepoImp "alphafarm/pkg/location/repositoryImp"
	healthCtrlImp "alphafarm/pkg/health/controllerImp"
	yieldCtrlImp "alphafarm/pkg/yield/controllerImp"
	"alphafarm/pkg/yield/external"
	"alphafarm/pkg/yield/importer"
	yieldRepoImp "alphafarm/pkg/yield/repositoryImp"
	yieldSvcImp "alphafarm/pkg/yield/serviceImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if cfg.EnvFileErr != nil {
		logger.Warn("could not parse .env", zap.Error(cfg.EnvFileErr))
	}
	logger.Info("config loaded", cfg.Fields()...)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	if !cfg.JWTSecretSet {
		logger.Warn("JWT_SECRET not set, signing tokens with the built-in dev secret")
	}

	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		logger.Warn("unknown timezone, using system default", zap.String("tz", cfg.Timezone), zap.Error(err))
	} else {
		time.Local = loc
	}

	// 2) DB (sqlite) + migrate + seeds
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg.AdminPhone, cfg.AdminPassword); err != nil {
		logger.Warn("seed admin", zap.Error(err))
	}
	if err := database.SeedLocations(db, cfg.LocationsYAML); err != nil {
		logger.Warn("seed locations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	yRepo := yieldRepoImp.New(db)
	if cfg.YieldConfigXLSX != "" {
		rows, err := importer.LoadFile(cfg.YieldConfigXLSX)
		if err != nil {
			logger.Warn("yield config import", zap.String("path", cfg.YieldConfigXLSX), zap.Error(err))
		} else if n, err := yRepo.Upsert(ctx, rows); err != nil {
			logger.Warn("yield config upsert", zap.Error(err))
		} else {
			logger.Info("yield configs imported", zap.Int("rows", n))
		}
	}
	factors, err := catalog.LoadFactors(cfg.YieldFactorsYAML)
	if err != nil {
		logger.Warn("yield factors, using defaults", zap.Error(err))
	}

	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 3) OTP store: redis when configured, else the database
	var otps otp.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		otps = otp.NewRedisStore(rdb)
		hCtrl.With("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		otps = otp.NewGormStore(db)
	}

	// 4) Approval events
	var pub event.Publisher = event.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		rp, err := event.NewRabbitPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Warn("amqp unavailable, logging events instead", zap.Error(err))
		} else {
			pub = rp
		}
	}
	defer pub.Close()

	m := metrics.New()
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// 5) Repos / services / controllers
	lRepo := landRepoImp.New(db)
	pRepo := planRepoImp.New(db)

	authSvc := authSvcImp.NewAuthService(authRepoImp.New(db), otps, tokens,
		authSvcImp.Options{OTPTTL: cfg.OTPTTL, OTPDevCode: cfg.OTPDevCode}, logger)

	var upstream yieldSvcImp.Upstream
	if cfg.YieldAPIURL != "" {
		upstream = external.New(cfg.YieldAPIURL, nil, 3, 30*time.Second)
	}

	fetcher := scrape.NewFetcher(cfg.NewsAllowedDomains, nil)
	resolver := lookup.New(cfg.PincodeAPIURL, cfg.GeocodeAPIURL, nil)

	ctrls := router.Controllers{
		Auth:     authCtrlImp.NewAuthController(authSvc),
		Farmer:   farmerCtrlImp.New(farmerSvcImp.NewFarmerService(farmerRepoImp.New(db), lRepo, pRepo)),
		Land:     landCtrlImp.New(landSvcImp.NewLandService(lRepo)),
		Plan:     planCtrlImp.NewPlanCtrl(planSvcImp.NewPlanService(pRepo, lRepo, m, logger)),
		Admin:    adminCtrlImp.New(adminSvcImp.NewAdminService(adminRepoImp.New(db), lRepo, pRepo, pub, m, logger)),
		News:     newsCtrlImp.New(newsSvcImp.NewNewsService(newsRepoImp.New(db), fetcher, pub, m, logger)),
		Yield:    yieldCtrlImp.New(yieldSvcImp.NewYieldService(yRepo, upstream, factors, m, logger)),
		Location: locationCtrlImp.New(locationRepoImp.New(db), resolver, logger),
		Health:   hCtrl,
		Metrics:  m.Handler(),
	}

	farmerAuth := middleware.TokenAuth(tokens)
	guards := router.Guards{
		Farmer: []echo.MiddlewareFunc{farmerAuth, middleware.RequireFarmer()},
		Admin: []echo.MiddlewareFunc{
			middleware.DevAdminFallback(cfg.DevAdminFallback, authSvc.FirstAdmin, logger),
			farmerAuth,
			middleware.RequireRole(entities.RoleAdmin),
		},
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(logging.RequestLogger(logger))
	e.Use(echoMiddleware.CORS())
	router.New(e, ctrls, guards)

	// 7) Start + graceful shutdown
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
