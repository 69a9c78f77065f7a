// Package webapp models the Telegram Mini App bridge as an injected
// capability, and validates the init data the mini app sends to the API.
package webapp

import (
	"context"
	"errors"
	"sync"
)

// EventMainButtonClicked is emitted when the user presses the main button.
const EventMainButtonClicked = "mainButtonClicked"

// Handler receives bridge events.
type Handler func()

// MainButton controls the bottom action button of the mini app.
type MainButton interface {
	Show()
	Hide()
	ShowProgress()
	HideProgress()
}

// Bridge is the part of the Telegram WebApp object the mini app uses.
type Bridge interface {
	Ready()
	OnEvent(name string, h Handler) int
	OffEvent(name string, id int)
	MainButton() MainButton
	SwitchInlineQuery(text string)
	InitData() string
}

// Availability is the provider state.
type Availability int

const (
	Unavailable Availability = iota
	Available
)

func (a Availability) String() string {
	if a == Available {
		return "available"
	}
	return "unavailable"
}

var (
	ErrAlreadyProvided = errors.New("telegram bridge already provided")
	ErrNilBridge       = errors.New("telegram bridge is nil")
)

// Provider hands out the bridge once it becomes available.
type Provider struct {
	mu     sync.Mutex
	bridge Bridge
	ready  chan struct{}
}

// NewProvider returns a provider in the Unavailable state.
func NewProvider() *Provider {
	return &Provider{ready: make(chan struct{})}
}

// Provide makes b available. It can be called once, with a non-nil bridge.
func (p *Provider) Provide(b Bridge) error {
	if b == nil {
		return ErrNilBridge
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bridge != nil {
		return ErrAlreadyProvided
	}
	p.bridge = b
	close(p.ready)
	return nil
}

// State reports whether the bridge is available yet.
func (p *Provider) State() Availability {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bridge == nil {
		return Unavailable
	}
	return Available
}

// Get returns the bridge without waiting.
func (p *Provider) Get() (Bridge, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bridge, p.bridge != nil
}

// Await blocks until the bridge is provided or ctx is done.
func (p *Provider) Await(ctx context.Context) (Bridge, error) {
	select {
	case <-p.ready:
		b, _ := p.Get()
		return b, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
