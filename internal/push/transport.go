// ABOUTME: Push transport contract and a logging implementation for CLI use
// ABOUTME: Subscribe/unsubscribe by topic string; delivery internals are out of scope

package push

import "log/slog"

// Transport is the topic-based push messaging surface. Failures are
// fire-and-forget from the core's perspective: no retry logic lives here.
type Transport interface {
	Subscribe(topic string) error
	Unsubscribe(topic string) error
}

// LogTransport records subscription changes to a logger. Used by the CLI,
// where no real push transport is attached.
type LogTransport struct {
	Logger *slog.Logger
}

func (t *LogTransport) Subscribe(topic string) error {
	t.Logger.Info("subscribe", "topic", topic)
	return nil
}

func (t *LogTransport) Unsubscribe(topic string) error {
	t.Logger.Info("unsubscribe", "topic", topic)
	return nil
}
