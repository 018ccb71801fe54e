package services

import (
	"context"
	"log/slog"

	"github.com/finbooks-io/finbooks/internal/core/domain"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
)

// logEventPublisher emits domain events as structured log records. It stands
// in for a message broker; downstream consumers tail the audit stream.
type logEventPublisher struct {
	BaseService
}

// NewLogEventPublisher creates an EventPublisher backed by the structured logger.
func NewLogEventPublisher() portssvc.EventPublisher {
	return &logEventPublisher{}
}

var _ portssvc.EventPublisher = (*logEventPublisher)(nil)

func (p *logEventPublisher) PublishJournalEntryPosted(ctx context.Context, event domain.JournalEntryPosted) {
	p.GetLogger(ctx).Info("journal.entry.posted",
		slog.String("entry_id", event.EntryID),
		slog.String("tenant_id", event.TenantID),
		slog.String("entry_number", event.EntryNumber),
		slog.String("posted_by", event.PostedBy),
		slog.Time("posted_at", event.PostedAt),
	)
}
