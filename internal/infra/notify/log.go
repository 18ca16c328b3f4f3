package notify

import (
	"context"
	"log/slog"

	"studio-booking/internal/usecase/commands"
)

// LogNotifier writes events to the log. Used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, event commands.Event) error {
	attrs := []slog.Attr{
		slog.String("type", string(event.Type)),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.Expired != nil {
		attrs = append(attrs,
			slog.Int64("total_expired", event.Expired.TotalExpired),
			slog.Int("affected_accounts", event.Expired.AffectedAccounts),
		)
	} else {
		attrs = append(attrs,
			slog.String("booking_id", event.BookingID.String()),
			slog.String("slot", event.Date+" "+event.StartTime),
			slog.String("status", event.Status),
		)
	}
	n.logger.LogAttrs(ctx, slog.LevelInfo, "event published", attrs...)
	return nil
}
