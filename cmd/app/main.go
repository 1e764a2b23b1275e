package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/external/abstractapi"
	mt "github.com/Project2Studios/panickin-skywalker-enhanced-sub003/external/midtrans"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/external/resend"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/cache"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/config"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/db"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/logging"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/middleware"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/pricing"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	envName := os.Getenv("MERCH_ENV")
	if envName == "" {
		envName = "local"
	}
	cfg, err := config.Load("./configs", envName)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)
	middleware.SetSecret(cfg.Security.JWTSecret)

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal(err)
	}
	sessions := cache.NewRedisSessionStore(rdb, cfg.Session.TTL)

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator = services.NewLocalEmailValidator()
	if cfg.Newsletter.Validator == "abstractapi" {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.Newsletter.AbstractAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	var mailer services.Mailer
	if cfg.Newsletter.SendConfirmEmails {
		mailer, err = resend.NewResendMailer(cfg.Resend.APIKey, cfg.Resend.From)
		if err != nil {
			log.Fatal(err)
		}
	}

	gateway := mt.NewGateway(cfg.Midtrans.ServerKey, cfg.Midtrans.Production)

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	shippingRepo := repository.NewShippingRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	tourRepo := repository.NewTourRepository(pool)
	newsRepo := repository.NewNewsletterRepository(pool)

	// ======================
	// SERVICES
	// ======================
	calc := pricing.Calculator{
		TaxRate:               cfg.TaxRate(),
		FreeShippingThreshold: cfg.FreeShippingThreshold(),
	}

	authSvc := services.NewAuthService(authRepo, customerRepo)
	productSvc := services.NewProductService(productRepo)
	cartSvc := services.NewCartService(sessions, productRepo, promoRepo, shippingRepo, calc)
	checkoutSvc := services.NewCheckoutService(sessions, cartSvc, shippingRepo, customerRepo)
	paymentSvc := services.NewPaymentService(sessions, cartSvc, orderRepo, paymentRepo, gateway)
	orderSvc := services.NewOrderService(orderRepo, paymentRepo)
	tourSvc := services.NewTourService(tourRepo)
	newsSvc := services.NewNewsletterService(newsRepo, emailValidator, mailer, cfg.Newsletter.ConfirmBaseURL)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout
	e.Server.IdleTimeout = cfg.HTTP.IdleTimeout

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/merch-store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerProductRoutes(api, productSvc)
	registerCartRoutes(api, cartSvc)
	registerCheckoutRoutes(api, checkoutSvc)
	registerShippingRoutes(api, shippingRepo)
	registerPaymentRoutes(api, paymentSvc)
	registerOrderRoutes(api, orderSvc, customerRepo)
	registerAdminOrderRoutes(api, orderSvc)
	registerTourRoutes(api, tourSvc)
	registerNewsletterRoutes(api, newsSvc)

	logger.Info("listening", "addr", cfg.App.HTTPAddr, "env", envName)
	e.Logger.Fatal(e.Start(cfg.App.HTTPAddr))
}
