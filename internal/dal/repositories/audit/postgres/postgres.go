package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/service/models/auditlog"
)

// AuditRepository stores submission audit entries.
type AuditRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(conn postgres.GenericConn) *AuditRepository {
	return &AuditRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAuditLogs inserts the entries in one statement. Entries whose event id is already
// stored are skipped, so redelivered events are harmless.
func (r *AuditRepository) SaveAuditLogs(ctx context.Context, entries []auditlog.SubmissionAudit) error {
	if len(entries) == 0 {
		return nil
	}

	builder := r.sb.Insert("submission_audit").
		Columns(
			"event_id",
			"kind",
			"record_id",
			"customer_id",
			"customer_email",
			"item_count",
			"notification_ok",
			"occurred_at",
			"created_at",
		)

	for _, e := range entries {
		builder = builder.Values(
			e.EventID,
			e.Kind,
			e.RecordID,
			e.CustomerID,
			e.CustomerEmail,
			e.ItemCount,
			e.NotificationOK,
			e.OccurredAt,
			e.CreatedAt,
		)
	}

	query, args, err := builder.Suffix("ON CONFLICT (event_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert audit entries: %w", err)
	}

	return nil
}
