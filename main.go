package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/clinicdesk/booking-api/config"
	"github.com/clinicdesk/booking-api/internal/handler"
	"github.com/clinicdesk/booking-api/internal/middleware"
	"github.com/clinicdesk/booking-api/internal/notifier"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/internal/service"
	"github.com/clinicdesk/booking-api/pkg/database"
	"github.com/clinicdesk/booking-api/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ carries booking events to the notification worker. The API
	// stays up without it; bookings then simply produce no emails.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("WARNING: RabbitMQ unavailable, notifications disabled: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	if publisher != nil {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect notification consumer: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		var n notifier.Notifier
		if cfg.SMTPHost != "" {
			n = notifier.NewSMTP(notifier.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				User:     cfg.SMTPUser,
				Password: cfg.SMTPPassword,
				From:     cfg.EmailFrom,
			})
		} else {
			n = notifier.NewConsole()
		}
		notifier.NewWorker(n).Start(msgs)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, slotRepo, userRepo, publisher)
	slotSvc := service.NewSlotService(slotRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, refreshRepo, cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-api"})
	})

	authMw := middleware.Auth(cfg.JWTSecret)
	optionalAuthMw := middleware.OptionalAuth(cfg.JWTSecret)
	limitMw := middleware.RateLimit(middleware.NewRateLimiter(5, 10))

	handler.NewAuthHandler(authSvc).RegisterRoutes(e, authMw, limitMw)
	handler.NewSlotHandler(slotSvc).RegisterRoutes(e, authMw)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, authMw, optionalAuthMw)

	log.Printf("Booking API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
