package common

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// ChannelKey is the log attribute naming the soundboard channel a record
// belongs to.
const ChannelKey = "channel"

// DesktopNotify shows an OS notification.
func DesktopNotify(title, body string) error {
	beeep.AppName = "soundboard"
	return beeep.Notify(title, body, "")
}

// NotifyHandler forwards records to the wrapped handler and, for error
// records that belong to a channel, also raises a notification. Sending
// happens off the logging goroutine.
type NotifyHandler struct {
	next    slog.Handler
	send    func(title, body string) error
	channel string // From WithAttrs
}

func NewNotifyHandler(next slog.Handler, send func(title, body string) error) *NotifyHandler {
	return &NotifyHandler{next: next, send: send}
}

func (h *NotifyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *NotifyHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		channel := h.channel
		var cause string
		r.Attrs(func(a slog.Attr) bool {
			switch a.Key {
			case ChannelKey:
				channel = a.Value.String()
			case "error":
				cause = a.Value.String()
			}
			return true
		})

		if channel != "" {
			title := fmt.Sprintf("Soundboard: %s", channel)
			body := r.Message
			if cause != "" {
				body = body + ": " + cause
			}
			go func() {
				if err := h.send(title, body); err != nil {
					rec := slog.NewRecord(time.Now(), slog.LevelWarn, "desktop notification failed", 0)
					rec.AddAttrs(slog.Any("error", err))
					_ = h.next.Handle(context.Background(), rec)
				}
			}()
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *NotifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	channel := h.channel
	for _, a := range attrs {
		if a.Key == ChannelKey {
			channel = a.Value.String()
		}
	}
	return &NotifyHandler{next: h.next.WithAttrs(attrs), send: h.send, channel: channel}
}

func (h *NotifyHandler) WithGroup(name string) slog.Handler {
	return &NotifyHandler{next: h.next.WithGroup(name), send: h.send, channel: h.channel}
}
