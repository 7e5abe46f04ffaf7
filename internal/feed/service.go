package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"snapsentinel/internal/eventbus"
	"snapsentinel/internal/models"
)

// Snapshot is the externally visible state of the feed at one instant.
type Snapshot struct {
	Alerts    []models.Alert `json:"alerts"`
	IsLoading bool           `json:"isLoading"`
	Error     string         `json:"error,omitempty"`
}

// Service owns the authoritative in-memory alert list and its loading and
// error state. It fetches once on Start and again on every refresh signal.
//
// Refresh cycles are neither debounced nor cancelled: a signal arriving while
// a cycle is in flight starts a second concurrent cycle and the last one to
// complete wins the wholesale replacement. Cycle ids in the logs make racing
// cycles distinguishable.
type Service struct {
	client     *Client
	normalizer *Normalizer
	bus        *eventbus.Bus
	logger     *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	sub    *eventbus.Subscription

	mu       sync.Mutex
	alerts   []models.Alert
	loading  bool
	lastErr  error
	onUpdate func()
}

// NewService constructs the feed Service.
func NewService(client *Client, normalizer *Normalizer, bus *eventbus.Bus, logger *logrus.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:     client,
		normalizer: normalizer,
		bus:        bus,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// OnUpdate registers a hook invoked after every successful replacement of the
// alert list. Used to fan feed_updated events out to attached clients.
func (s *Service) OnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Start subscribes to the refresh signal and kicks off the initial fetch.
func (s *Service) Start() {
	s.sub = s.bus.Subscribe(eventbus.RefreshAlerts, func() {
		go s.Refresh(s.ctx)
	})
	go s.Refresh(s.ctx)
}

// Stop unsubscribes from the bus and releases in-flight cycles.
func (s *Service) Stop() {
	s.bus.Unsubscribe(s.sub)
	s.cancel()
}

// Refresh runs one full fetch cycle: GET, sort descending by resolved
// timestamp, normalize, replace wholesale. On failure the prior alert list is
// kept and only the error state changes. The loading flag always ends false.
func (s *Service) Refresh(ctx context.Context) {
	cycle := uuid.New().String()
	s.setLoading(true)
	defer s.setLoading(false)

	items, err := s.client.FetchAlerts(ctx)
	if err != nil {
		s.logger.Errorf("Fetch cycle %s failed: %v", cycle, err)
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return
	}

	SortDescending(items)
	alerts := make([]models.Alert, len(items))
	for i, item := range items {
		alerts[i] = s.normalizer.Normalize(item)
	}

	s.mu.Lock()
	s.alerts = alerts
	s.lastErr = nil
	fn := s.onUpdate
	s.mu.Unlock()

	s.logger.Infof("Fetch cycle %s replaced feed with %d alerts", cycle, len(alerts))
	if fn != nil {
		fn()
	}
}

// Snapshot returns a copy of the current feed state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Alerts:    append([]models.Alert(nil), s.alerts...),
		IsLoading: s.loading,
	}
	if snap.Alerts == nil {
		snap.Alerts = []models.Alert{}
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
