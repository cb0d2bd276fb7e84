package notify

import (
	"context"
	"fmt"
	"sync/atomic"

	"habitos/internal/amqp"
)

// ReminderPublisher is the slice of the AMQP client the notifier needs.
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, msg *amqp.ReminderMessage) error
}

// AMQPNotifier dispatches reminders to the reminders queue, where a push
// bridge (phone or desktop) picks them up. Permission is granted once the
// user enables notifications and a broker connection exists; without a
// broker the request is denied.
type AMQPNotifier struct {
	publisher ReminderPublisher
	enabled   atomic.Bool
}

var _ Notifier = (*AMQPNotifier)(nil)

// NewAMQPNotifier wires the notifier to a reminder publisher. A nil
// publisher models a platform without notification support.
func NewAMQPNotifier(publisher ReminderPublisher, enabled bool) *AMQPNotifier {
	n := &AMQPNotifier{publisher: publisher}
	n.enabled.Store(enabled && publisher != nil)
	return n
}

// RequestPermission implements Notifier.
func (n *AMQPNotifier) RequestPermission(_ context.Context) (Permission, error) {
	if n.publisher == nil {
		return PermissionDenied, nil
	}
	n.enabled.Store(true)
	return PermissionGranted, nil
}

// PermissionState implements Notifier.
func (n *AMQPNotifier) PermissionState() Permission {
	if n.publisher == nil {
		return PermissionDenied
	}
	if n.enabled.Load() {
		return PermissionGranted
	}
	return PermissionPending
}

// Notify implements Notifier.
func (n *AMQPNotifier) Notify(ctx context.Context, title, body string) error {
	if n.PermissionState() != PermissionGranted {
		return ErrNotGranted
	}
	msg := amqp.NewReminderMessage(title, body, "")
	if err := n.publisher.PublishReminder(ctx, msg); err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}
	return nil
}
