package webapp

import "sync"

// ButtonState is the observable state of a LocalBridge main button.
type ButtonState struct {
	Visible    bool
	InProgress bool
}

// LocalBridge is an in-process bridge: events are dispatched synchronously
// and button and inline-query calls are recorded.
type LocalBridge struct {
	mu         sync.Mutex
	initData   string
	readyCalls int
	handlers   map[string]map[int]Handler
	nextID     int
	button     ButtonState
	queries    []string
}

// NewLocalBridge returns a bridge reporting initData as its raw init data.
func NewLocalBridge(initData string) *LocalBridge {
	return &LocalBridge{
		initData: initData,
		handlers: make(map[string]map[int]Handler),
	}
}

func (b *LocalBridge) Ready() {
	b.mu.Lock()
	b.readyCalls++
	b.mu.Unlock()
}

func (b *LocalBridge) OnEvent(name string, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[name] == nil {
		b.handlers[name] = make(map[int]Handler)
	}
	b.nextID++
	b.handlers[name][b.nextID] = h
	return b.nextID
}

func (b *LocalBridge) OffEvent(name string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers[name], id)
}

// Emit runs every handler registered for name.
func (b *LocalBridge) Emit(name string) {
	b.mu.Lock()
	hs := make([]Handler, 0, len(b.handlers[name]))
	for _, h := range b.handlers[name] {
		hs = append(hs, h)
	}
	b.mu.Unlock()

	for _, h := range hs {
		h()
	}
}

func (b *LocalBridge) MainButton() MainButton {
	return localButton{b: b}
}

func (b *LocalBridge) SwitchInlineQuery(text string) {
	b.mu.Lock()
	b.queries = append(b.queries, text)
	b.mu.Unlock()
}

func (b *LocalBridge) InitData() string {
	return b.initData
}

// ReadyCalls returns how many times Ready was called.
func (b *LocalBridge) ReadyCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readyCalls
}

// Button returns the main button state.
func (b *LocalBridge) Button() ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.button
}

// Queries returns the inline queries switched to so far.
func (b *LocalBridge) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

// Handlers returns how many handlers are registered for name.
func (b *LocalBridge) Handlers(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[name])
}

type localButton struct {
	b *LocalBridge
}

func (l localButton) set(fn func(*ButtonState)) {
	l.b.mu.Lock()
	fn(&l.b.button)
	l.b.mu.Unlock()
}

func (l localButton) Show()         { l.set(func(s *ButtonState) { s.Visible = true }) }
func (l localButton) Hide()         { l.set(func(s *ButtonState) { s.Visible = false }) }
func (l localButton) ShowProgress() { l.set(func(s *ButtonState) { s.InProgress = true }) }
func (l localButton) HideProgress() { l.set(func(s *ButtonState) { s.InProgress = false }) }
