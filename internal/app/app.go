package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/booking/internal/config"
	"github.com/corray333/backend-labs/booking/internal/dal/gateway"
	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/booking/internal/dal/redis"
	catalogrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/catalog/postgres"
	draftrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/draft/redis"
	eventsrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/events/rabbitmq"
	"github.com/corray333/backend-labs/booking/internal/otel"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
	"github.com/corray333/backend-labs/booking/internal/service/notification"
	"github.com/corray333/backend-labs/booking/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/service/services/wizardsvc"
	httptransport "github.com/corray333/backend-labs/booking/internal/transport/http"
)

type eventPublisher interface {
	Publish(ctx context.Context, ev event.Submission) error
}

// App represents the booking API application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	redisClient    *goredis.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("booking-svc")
	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()

	gw := gateway.MustNewGateway(
		gateway.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.NewCatalogService(catalogrepo.NewPostgresCatalogRepository(postgresClient.Pool()))

	var (
		rabbitMqClient *rabbitmq.Client
		publisher      eventPublisher
	)
	if viper.GetBool("rabbitmq.enabled") {
		rabbitMqClient = rabbitmq.MustNewClient()
		publisher = eventsrepo.MustNewEventsRabbitMQRepository(rabbitMqClient, viper.GetString("rabbitmq.queue"))
	} else {
		slog.Info("Submission events disabled", "reason", "rabbitmq.enabled is false")
	}

	submissionSvc := submissionsvc.MustNewSubmissionService(
		submissionsvc.WithGateway(gw),
		submissionsvc.WithCatalog(catalogSvc),
		submissionsvc.WithNotifier(newNotifier(config.MustLoadNotification())),
		submissionsvc.WithPublisher(publisher),
	)

	wizardSvc := wizardsvc.MustNewWizardService(
		wizardsvc.WithDraftStore(draftrepo.NewDraftRedisRepository(
			redisClient,
			time.Duration(viper.GetInt("redis.draft_ttl_minutes"))*time.Minute,
		)),
		wizardsvc.WithCatalog(catalogSvc),
		wizardsvc.WithSubmitter(submissionSvc),
	)

	transport := httptransport.NewHTTPTransport(httptransport.Services{
		Catalog:     catalogSvc,
		Submissions: submissionSvc,
		History:     gw,
		Drafts:      wizardSvc,
		Health:      postgresClient,
	})
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// newNotifier builds the SMS and admin email senders from the environment credentials.
func newNotifier(cfg config.Notification) *notification.Notifier {
	client := &http.Client{Timeout: time.Duration(viper.GetInt("notification.timeout_seconds")) * time.Second}

	if cfg.ResendAPIKey == "" || cfg.AdminEmail == "" {
		slog.Info("Admin booking email disabled", "reason", "RESEND_API_KEY or ADMIN_EMAIL not set")
	}

	return notification.NewNotifier(
		notification.WithSMSSender(notification.NewSMSSender(notification.SMSConfig{
			BaseURL:     viper.GetString("notification.sms_base_url"),
			AccountSID:  cfg.TwilioAccountSID,
			AuthToken:   cfg.TwilioAuthToken,
			PhoneNumber: cfg.TwilioPhoneNumber,
		}, client)),
		notification.WithEmailSender(notification.NewEmailSender(notification.EmailConfig{
			BaseURL: viper.GetString("notification.email_base_url"),
			APIKey:  cfg.ResendAPIKey,
		}, client), cfg.AdminEmail),
	)
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	a.gracefulShutdown()
}

// gracefulShutdown stops the HTTP server first, then closes the clients it used.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	} else {
		slog.Info("Redis connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	} else {
		slog.Info("Otel trace provider stopped gracefully")
	}

	slog.Info("Application shutdown complete")
}
