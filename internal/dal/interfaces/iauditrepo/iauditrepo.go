package iauditrepo

import (
	"context"

	"github.com/corray333/backend-labs/booking/internal/service/models/auditlog"
)

// IAuditRepository is an interface for submission audit repository.
type IAuditRepository interface {
	SaveAuditLogs(ctx context.Context, entries []auditlog.SubmissionAudit) error
}
