package dashboard

import (
	"context"
	"log/slog"
)

// Notification is a toast forwarded outside the dashboard.
type Notification struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Version uint64 `json:"version"`
	Toast   Toast  `json:"toast"`
}

// NotificationsClient defines the minimal interface needed from go-notifications (or similar).
type NotificationsClient interface {
	Publish(ctx context.Context, n Notification) error
}

// NotificationsHook forwards new toasts to an external notifications client
// while the viewer has notifications turned on.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// StateChanged publishes the toast queued by change, if any.
func (h *NotificationsHook) StateChanged(ctx context.Context, change StateChange) error {
	if h == nil || h.Client == nil || change.Toast == nil || !change.State.Notifications {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "dashboard"
	}
	return h.Client.Publish(ctx, Notification{
		Channel: channel,
		Event:   change.Event,
		Version: change.Version,
		Toast:   *change.Toast,
	})
}

// LogNotifications writes notifications to a structured logger.
type LogNotifications struct {
	Logger *slog.Logger
}

// Publish logs n at info level.
func (l LogNotifications) Publish(ctx context.Context, n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "dashboard notification",
		slog.String("channel", n.Channel),
		slog.String("event", n.Event),
		slog.String("type", string(n.Toast.Type)),
		slog.String("message", n.Toast.Message),
	)
	return nil
}
