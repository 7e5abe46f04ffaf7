// Package providers implements the visible-notification surfaces a push
// message can be mirrored onto while no client UI is attached.
package providers

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier surfaces an operator-visible banner for a push message. Failures
// are logged by callers and never block message handling.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier writes the banner to the service log. Always available.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Notify(_ context.Context, title, body string) error {
	n.Logger.Infof("Notification: %s: %s", title, body)
	return nil
}

// Multi fans a banner out to several notifiers, returning the first error
// after attempting all of them.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil && first == nil {
			first = err
		}
	}
	return first
}
