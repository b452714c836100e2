package log

import (
	"context"
	"log/slog"

	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// SlogAdapter writes trace events to an slog.Logger at debug level.
// Useful for development when you want to watch discovery in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("kind", event.Kind.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}

	switch {
	case event.Lifecycle != nil:
		attrs = append(attrs, slog.String("stage", event.Lifecycle.Stage.String()))
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Result != nil:
		attrs = append(attrs, ResultAttrs(event.Result)...)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("operation", event.Error.Operation),
			slog.String("error", event.Error.Message),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("code", *event.Error.Code))
		}
		if event.Error.Callback {
			attrs = append(attrs, slog.Bool("callback", true))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "discovery", attrs...)
}

// ResultAttrs returns the set fields of a result as slog attributes.
func ResultAttrs(r *ResultEvent) []slog.Attr {
	attrs := []slog.Attr{slog.String("action", r.Action.String())}
	if r.Name != "" {
		attrs = append(attrs, slog.String("name", r.Name))
	}
	if r.Domain != "" {
		attrs = append(attrs, slog.String("domain", r.Domain))
	}
	if r.Host != "" {
		attrs = append(attrs, slog.String("host", r.Host))
	}
	if r.Port != 0 {
		attrs = append(attrs, slog.Int("port", int(r.Port)))
	}
	if r.Address != "" {
		attrs = append(attrs, slog.String("address", r.Address))
	}
	if len(r.TXT) > 0 {
		if rec, err := txt.Decode(r.TXT); err == nil {
			attrs = append(attrs, slog.Any("txt", rec.Map()))
		} else {
			attrs = append(attrs, slog.Int("txt_len", len(r.TXT)))
		}
	}
	if r.InterfaceIndex != 0 {
		attrs = append(attrs, slog.Int("if_index", r.InterfaceIndex))
	}
	if r.TTL != 0 {
		attrs = append(attrs, slog.Uint64("ttl", uint64(r.TTL)))
	}
	return attrs
}

var _ Logger = (*SlogAdapter)(nil)
