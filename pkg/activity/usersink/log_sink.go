package usersink

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// LogSink writes go-users activity records to a structured logger. It stands
// in for a persistent sink when no user store is configured.
type LogSink struct {
	Logger *slog.Logger
}

// Log emits record at info level.
func (s LogSink) Log(ctx context.Context, record types.ActivityRecord) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []slog.Attr{
		slog.String("verb", record.Verb),
		slog.String("object_type", record.ObjectType),
		slog.String("object_id", record.ObjectID),
		slog.String("channel", record.Channel),
		slog.Time("occurred_at", record.OccurredAt),
	}
	if record.ActorID != uuid.Nil {
		attrs = append(attrs, slog.String("actor_id", record.ActorID.String()))
	}
	if record.TenantID != uuid.Nil {
		attrs = append(attrs, slog.String("tenant_id", record.TenantID.String()))
	}
	if len(record.Data) > 0 {
		attrs = append(attrs, slog.Any("data", record.Data))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "dashboard activity", attrs...)
	return nil
}
