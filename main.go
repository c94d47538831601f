package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campushub/campus-events/config"
	"github.com/campushub/campus-events/internal/handler"
	"github.com/campushub/campus-events/internal/mailer"
	"github.com/campushub/campus-events/internal/middleware"
	"github.com/campushub/campus-events/internal/notifier"
	"github.com/campushub/campus-events/internal/repository"
	"github.com/campushub/campus-events/internal/service"
	"github.com/campushub/campus-events/internal/sweeper"
	"github.com/campushub/campus-events/pkg/database"
	"github.com/campushub/campus-events/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Notification consumer: turns published state changes into emails
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	var mail mailer.Mailer
	switch cfg.MailBackend {
	case "sendgrid":
		mail = mailer.NewSendgrid(cfg.SendgridAPIKey, cfg.FromName, cfg.FromEmail)
	default:
		mail = mailer.NewConsole()
	}
	notifier.NewConsumer(mail, cfg.BaseURL).Start(msgs)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Services
	userSvc := service.NewUserService(userRepo)
	eventSvc := service.NewEventService(eventRepo, regRepo, feedbackRepo, userRepo, publisher)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, publisher)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, eventRepo, regRepo)

	// Sweeper
	sw := sweeper.New(eventSvc, cfg.SweepInterval, cfg.FeedbackGrace)
	sw.Start()

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
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
	e.Use(middleware.Identity(userRepo))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "campus-events"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	users := api.Group("/users")
	events := api.Group("/events")

	handler.NewUserHandler(userSvc).RegisterRoutes(users)
	handler.NewEventHandler(eventSvc).RegisterRoutes(events)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(events, api)
	handler.NewFeedbackHandler(feedbackSvc).RegisterRoutes(events)

	go func() {
		log.Printf("Campus Events starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sw.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
