package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultLoadDelay is how long the initial loading state lasts.
	DefaultLoadDelay = 2 * time.Second
	// DefaultRefreshInterval is the period of the real-time data refresh.
	DefaultRefreshInterval = 30 * time.Second
)

var errMissingController = errors.New("dashboard: controller not configured")

// Dispatcher is the subset of Controller the scheduler needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) (AppState, error)
	Snapshot() AppState
}

// RefreshOptions configures a RefreshScheduler.
type RefreshOptions struct {
	Source           DatasetSource
	LoadDelay        time.Duration
	Interval         time.Duration
	RefreshCampaigns bool
	Logger           *slog.Logger
}

// RefreshScheduler ends the initial loading phase after LoadDelay and then
// replaces the time series every Interval while auto refresh is on and the
// dashboard is not loading.
type RefreshScheduler struct {
	dispatcher Dispatcher
	opts       RefreshOptions

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefreshScheduler builds a stopped scheduler.
func NewRefreshScheduler(dispatcher Dispatcher, opts RefreshOptions) *RefreshScheduler {
	if opts.Source == nil {
		opts.Source = defaultGenerator
	}
	if opts.LoadDelay <= 0 {
		opts.LoadDelay = DefaultLoadDelay
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultRefreshInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &RefreshScheduler{dispatcher: dispatcher, opts: opts}
}

// Start arms the load timer and the refresh ticker. Calling Start on a running
// scheduler is a no-op. The scheduler stops when ctx is cancelled or Stop is
// called.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	if s.dispatcher == nil {
		return errMissingController
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(runCtx, done)
	return nil
}

// Stop cancels both timers and waits for the loop to exit. It is idempotent.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (s *RefreshScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *RefreshScheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	load := time.NewTimer(s.opts.LoadDelay)
	defer load.Stop()
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-load.C:
			if _, err := s.dispatcher.Dispatch(ctx, LoadingFinished{}); err != nil {
				s.opts.Logger.Warn("dashboard: finish loading", "error", err)
			}
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				s.opts.Logger.Warn("dashboard: refresh tick", "error", err)
			}
		}
	}
}

// Tick runs one refresh step synchronously. It reports whether data was
// replaced; nothing happens while loading or with auto refresh disabled.
func (s *RefreshScheduler) Tick(ctx context.Context) (bool, error) {
	if s.dispatcher == nil {
		return false, errMissingController
	}
	state := s.dispatcher.Snapshot()
	if !state.AutoRefresh || state.Loading {
		return false, nil
	}

	if s.opts.RefreshCampaigns {
		campaigns, err := s.opts.Source.FetchCampaigns(ctx)
		if err != nil {
			return false, fmt.Errorf("dashboard: refresh campaigns: %w", err)
		}
		if _, err := s.dispatcher.Dispatch(ctx, ReplaceCampaigns{Campaigns: campaigns}); Committed(err) != nil {
			return true, err
		}
	}

	points, err := s.opts.Source.FetchChartData(ctx)
	if err != nil {
		return false, fmt.Errorf("dashboard: refresh chart data: %w", err)
	}
	_, err = s.dispatcher.Dispatch(ctx, ReplaceChartData{Points: points, Announce: true})
	return true, Committed(err)
}
