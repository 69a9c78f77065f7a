// Package miniapp drives the Telegram Mini App shell around the Projects screen.
package miniapp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/telegram/webapp"
)

const (
	DefaultCountdown = 5 * time.Second
	DefaultTick      = time.Second
	CloseQuery       = "i guess that's it"
)

// SessionOptions tunes the close countdown. Zero values use the defaults.
type SessionOptions struct {
	Countdown time.Duration
	Tick      time.Duration
	Logger    *logging.Logger
}

// Session binds to the bridge once it is available: it signals readiness,
// shows the main button and, when the button is pressed, counts down and
// switches to an inline query.
type Session struct {
	provider  *webapp.Provider
	countdown time.Duration
	tick      time.Duration
	log       *logging.Logger

	mu        sync.Mutex
	bridge    webapp.Bridge
	handlerID int
	running   bool
	wg        sync.WaitGroup
	ctx       context.Context
}

func NewSession(provider *webapp.Provider, opt SessionOptions) *Session {
	if opt.Countdown <= 0 {
		opt.Countdown = DefaultCountdown
	}
	if opt.Tick <= 0 {
		opt.Tick = DefaultTick
	}
	if opt.Logger == nil {
		opt.Logger = logging.Nop()
	}
	return &Session{
		provider:  provider,
		countdown: opt.Countdown,
		tick:      opt.Tick,
		log:       opt.Logger.Named("miniapp"),
	}
}

// Start waits for the bridge, calls Ready once and wires the main button.
// Calling Start again is a no-op.
func (s *Session) Start(ctx context.Context) (webapp.Bridge, error) {
	s.mu.Lock()
	if s.bridge != nil {
		b := s.bridge
		s.mu.Unlock()
		return b, nil
	}
	s.mu.Unlock()

	b, err := s.provider.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("await telegram bridge: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bridge != nil {
		return s.bridge, nil
	}

	s.bridge = b
	s.ctx = ctx
	b.Ready()
	s.handlerID = b.OnEvent(webapp.EventMainButtonClicked, s.onMainButton)
	b.MainButton().Show()
	s.log.Info("start", "bridge ready")
	return b, nil
}

// Stop unsubscribes from the bridge and waits for a running countdown.
func (s *Session) Stop() {
	s.mu.Lock()
	b := s.bridge
	id := s.handlerID
	s.mu.Unlock()

	if b != nil {
		b.OffEvent(webapp.EventMainButtonClicked, id)
	}
	s.wg.Wait()
}

// Wait blocks until a running countdown has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) onMainButton() {
	s.mu.Lock()
	if s.running || s.bridge == nil {
		s.mu.Unlock()
		return
	}
	s.running = true
	b := s.bridge
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	b.MainButton().ShowProgress()
	go s.runCountdown(ctx, b)
}

func (s *Session) runCountdown(ctx context.Context, b webapp.Bridge) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	left := s.countdown
	for left > 0 {
		select {
		case <-ctx.Done():
			b.MainButton().HideProgress()
			return
		case <-ticker.C:
			s.log.Info("countdown", fmt.Sprintf("Closing in %.0f", left.Seconds()), zap.Duration("left", left))
			left -= s.tick
		}
	}
	b.SwitchInlineQuery(CloseQuery)
}
