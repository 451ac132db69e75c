package auditsvc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
)

// AuditService records submission events in the audit log.
type AuditService struct {
	auditRepo iauditrepo.IAuditRepository
	now       func() time.Time
}

// option is a function that configures the AuditService.
type option func(*AuditService)

// MustNewAuditService creates a new AuditService.
func MustNewAuditService(opts ...option) *AuditService {
	s := &AuditService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if s.auditRepo == nil {
		panic("auditsvc: audit repository is required")
	}

	return s
}

// WithAuditRepository sets the audit repository for the AuditService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(auditRepo iauditrepo.IAuditRepository) option {
	return func(s *AuditService) {
		s.auditRepo = auditRepo
	}
}

// ProcessSubmission stores one submission event. Events without an id or with an unknown
// kind are rejected as validation errors.
func (s *AuditService) ProcessSubmission(ctx context.Context, ev event.Submission) error {
	ctx, span := otel.Tracer("service").Start(ctx, "AuditService.ProcessSubmission")
	defer span.End()

	if ev.ID == "" {
		return apperr.Validation("submission event without id")
	}
	if ev.Kind != event.KindBooking && ev.Kind != event.KindOrder {
		return apperr.Validation("unknown submission kind %q", ev.Kind)
	}

	slog.Info("Processing submission event",
		"event_id", ev.ID,
		"kind", ev.Kind,
		"record_id", ev.RecordID,
		"customer_id", ev.CustomerID)

	entry := auditlog.SubmissionAudit{
		EventID:        ev.ID,
		Kind:           ev.Kind,
		RecordID:       ev.RecordID,
		CustomerID:     ev.CustomerID,
		CustomerEmail:  ev.CustomerEmail,
		ItemCount:      ev.ItemCount,
		NotificationOK: ev.NotificationOK,
		OccurredAt:     ev.OccurredAt,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLogs(ctx, []auditlog.SubmissionAudit{entry}); err != nil {
		slog.Error("Failed to save audit entry", "error", err)

		return apperr.Persistence("save audit entry", err)
	}

	return nil
}
