package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/dal/rabbitmq"
	auditrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/audit/postgres"
	"github.com/corray333/backend-labs/booking/internal/otel"
	"github.com/corray333/backend-labs/booking/internal/service/services/auditsvc"
	"github.com/corray333/backend-labs/booking/internal/transport/consumer"
)

// Auditor consumes submission events and stores them in the audit log.
type Auditor struct {
	consumer       *consumer.Consumer
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewAuditor creates a new Auditor.
func MustNewAuditor() *Auditor {
	otelController := otel.MustInitOtel("booking-auditor")
	rabbitMqClient := rabbitmq.MustNewClient()
	postgresClient := postgres.MustNewClient()

	auditSvc := auditsvc.MustNewAuditService(
		auditsvc.WithAuditRepository(auditrepo.NewAuditRepository(postgresClient.Pool())),
	)

	return &Auditor{
		consumer:       consumer.NewConsumer(rabbitMqClient, auditSvc),
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run consumes until an interrupt signal arrives.
func (a *Auditor) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting consumer")
		if err := a.consumer.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	a.gracefulShutdown()
	cancel()
}

// gracefulShutdown stops the consumer, then closes RabbitMQ, PostgreSQL and OpenTelemetry.
func (a *Auditor) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.consumer.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	} else {
		slog.Info("Otel trace provider stopped gracefully")
	}

	slog.Info("Auditor shutdown complete")
}
