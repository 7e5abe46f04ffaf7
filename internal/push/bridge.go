// Package push wires the broadcast push channel into the event bus. The
// delivery capability itself stays behind the Provider interface so the
// bridge can run against any backend, or a fake in tests.
package push

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"snapsentinel/internal/eventbus"
	"snapsentinel/internal/models"
	"snapsentinel/internal/providers"
)

// Topic is the broadcast channel every client instance subscribes to.
const Topic = "all_devices"

// Handlers receive messages from the three delivery channels: a message
// arriving while running, a notification tap that brought the process back,
// and a notification that started it cold.
type Handlers struct {
	OnForeground func(models.PushMessage)
	OnOpened     func(models.PushMessage)
	OnInitial    func(models.PushMessage)
}

// Provider abstracts the push delivery capability.
type Provider interface {
	// RequestPermission asks for delivery to begin. A false result without
	// an error is an ordinary denial.
	RequestPermission(ctx context.Context) (bool, error)

	// Subscribe joins the given broadcast topic.
	Subscribe(ctx context.Context, topic string) error

	// Listen blocks delivering messages into the handlers until ctx ends.
	Listen(ctx context.Context, h Handlers) error
}

// State tracks the bridge lifecycle.
type State int

const (
	StateUninitialized State = iota
	StatePermissionRequested
	StateSubscribed
	StateInert
)

// Bridge walks the permission/subscription handshake and translates inbound
// messages into visible notifications and refresh signals.
type Bridge struct {
	provider Provider
	bus      *eventbus.Bus
	notifier providers.Notifier
	logger   *logrus.Logger

	mu    sync.Mutex
	state State
}

// NewBridge constructs a Bridge in the uninitialized state.
func NewBridge(provider Provider, bus *eventbus.Bus, notifier providers.Notifier, logger *logrus.Logger) *Bridge {
	return &Bridge{
		provider: provider,
		bus:      bus,
		notifier: notifier,
		logger:   logger,
		state:    StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Start requests permission and, when granted, subscribes to the broadcast
// topic and begins listening on a background goroutine. A denial leaves the
// bridge inert without error; a failed topic subscription is logged and does
// not block initialization.
func (b *Bridge) Start(ctx context.Context) {
	b.setState(StatePermissionRequested)

	granted, err := b.provider.RequestPermission(ctx)
	if err != nil {
		b.logger.Errorf("Notification permission request failed: %v", err)
		b.setState(StateInert)
		return
	}
	if !granted {
		b.logger.Infof("Notification permission denied, push bridge disabled")
		b.setState(StateInert)
		return
	}

	if err := b.provider.Subscribe(ctx, Topic); err != nil {
		b.logger.Errorf("Error subscribing to topic %s: %v", Topic, err)
	} else {
		b.logger.Infof("Subscribed to topic: %s", Topic)
	}
	b.setState(StateSubscribed)

	go func() {
		err := b.provider.Listen(ctx, Handlers{
			OnForeground: func(msg models.PushMessage) { b.handleForeground(ctx, msg) },
			OnOpened:     func(msg models.PushMessage) { b.handleTap(msg) },
			OnInitial:    func(msg models.PushMessage) { b.handleTap(msg) },
		})
		if err != nil && ctx.Err() == nil {
			b.logger.Errorf("Push listener stopped: %v", err)
		}
	}()
}

// handleForeground surfaces a visible banner and asks the feed to refetch.
func (b *Bridge) handleForeground(ctx context.Context, msg models.PushMessage) {
	title := msg.Title
	if title == "" {
		title = "New alert detected"
	}
	if err := b.notifier.Notify(ctx, title, msg.Body); err != nil {
		b.logger.Errorf("Banner notification failed: %v", err)
	}
	b.bus.Publish(eventbus.RefreshAlerts)
}

// handleTap covers both the opened-from-background and cold-start channels,
// including taps on mirrored local notifications.
func (b *Bridge) handleTap(msg models.PushMessage) {
	if msg.ImageID == "" {
		return
	}
	b.logger.Infof("Notification tap for alert %s", msg.ImageID)
	// Deep navigation to the alert detail is not wired up yet; refreshing the
	// feed is the observable effect for now.
	b.bus.Publish(eventbus.RefreshAlerts)
}
