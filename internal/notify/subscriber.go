package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codecanvas/beacon/internal/storage"
)

// MessageSender delivers one message to one recipient. Mail transport is
// owned by the wider platform; the log sender below is the in-repo default.
type MessageSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender records outgoing messages instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.logger.Info("outgoing message", "recipient", recipient, "subject", subject)
	return nil
}

// SubscriberNotifier mails every subscriber about a freshly published
// article. Per-recipient failures are logged and do not stop the rest.
type SubscriberNotifier struct {
	subscribers storage.SubscriberStore
	sender      MessageSender
	logger      *slog.Logger
}

func NewSubscriberNotifier(subscribers storage.SubscriberStore, sender MessageSender, logger *slog.Logger) *SubscriberNotifier {
	if sender == nil {
		sender = NewLogSender(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriberNotifier{
		subscribers: subscribers,
		sender:      sender,
		logger:      logger,
	}
}

func (n *SubscriberNotifier) NotifySubscribers(ctx context.Context, title, url string) {
	subscribers, err := n.subscribers.ListSubscribers(ctx)
	if err != nil {
		n.logger.Error("failed to load subscribers", "error", err)
		return
	}

	subject := "New Article: " + title
	for _, sub := range subscribers {
		body := fmt.Sprintf(
			"New article published: %s\nRead here: %s\n\nTo unsubscribe: /api/subscribe/unsubscribe?email=%s&token=%s",
			title, url, sub.Email, sub.UnsubscribeToken,
		)
		if err := n.sender.Send(ctx, sub.Email, subject, body); err != nil {
			n.logger.Error("failed to notify subscriber", "email", sub.Email, "error", err)
		}
	}
}
