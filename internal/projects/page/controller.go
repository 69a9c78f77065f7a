// Package page owns the paginated project collection of the Projects screen:
// it fetches pages from the remote API, tracks the load state and folds saved
// projects back into the collection.
package page

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

// Remote is the resource API the controller reads pages from and saves edits to.
type Remote interface {
	FetchPage(ctx context.Context, page int) ([]domain.Project, error)
	Save(ctx context.Context, p domain.Project) (domain.Project, error)
}

// Status is the load state of the collection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Status      Status
	CurrentPage int
	Error       string
	Projects    []domain.Project
}

// Loading reports whether a fetch is in flight.
func (s Snapshot) Loading() bool {
	return s.Status == StatusLoading
}

// Controller is safe for concurrent use. Network calls run outside the lock;
// each fetch is tagged with a generation and only the latest one may apply.
// Observers are called one at a time, each with the state current at the
// time of the call, so the last call always carries the latest state.
// Observers must not start a fetch or a save synchronously.
type Controller struct {
	remote Remote
	log    *logging.Logger

	notifyMu sync.Mutex

	mu          sync.Mutex
	status      Status
	currentPage int
	loadedPage  int
	errMsg      string
	projects    []domain.Project
	generation  uint64

	observers map[int]func(Snapshot)
	nextObs   int
}

// New returns an idle controller positioned on page 1.
func New(remote Remote, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		remote:      remote,
		log:         log.Named("page"),
		currentPage: 1,
		observers:   make(map[int]func(Snapshot)),
	}
}

// Mount loads the first page, replacing the collection.
func (c *Controller) Mount(ctx context.Context) error {
	return c.load(ctx, 1)
}

// Refresh reloads page 1 and replaces the collection with it.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.load(ctx, 1)
}

// LoadMore requests the page after the last one that loaded successfully and
// appends it. It does nothing while a fetch is in flight.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusLoading {
		c.mu.Unlock()
		c.log.Debug("load_more", "ignored while loading")
		return nil
	}
	next := c.loadedPage + 1
	c.mu.Unlock()

	return c.load(ctx, next)
}

// Save persists p through the remote API. On success the element with the
// same id is replaced by the confirmed project, keeping the order. On failure
// the error is recorded and the collection is left as it was.
func (c *Controller) Save(ctx context.Context, p domain.Project) (domain.Project, error) {
	saved, err := c.remote.Save(ctx, p)

	c.mu.Lock()
	if err != nil {
		c.status = StatusError
		c.errMsg = err.Error()
		c.mu.Unlock()

		c.log.For(ctx).Error("save_project", err, zap.Int64("project_id", p.ID))
		c.notify()
		return domain.Project{}, err
	}

	for i := range c.projects {
		if c.projects[i].ID == saved.ID {
			c.projects[i] = saved
			break
		}
	}
	c.mu.Unlock()

	c.log.For(ctx).Info("save_project", "project saved", zap.Int64("project_id", saved.ID))
	c.notify()
	return saved, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Projects returns a copy of the collection.
func (c *Controller) Projects() []domain.Project {
	return c.Snapshot().Projects
}

// Subscribe registers fn to be called after every state transition.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

func (c *Controller) load(ctx context.Context, page int) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.currentPage = page
	c.status = StatusLoading
	c.mu.Unlock()
	c.notify()

	log := c.log.For(ctx)
	log.Debug("fetch_page", "fetching", zap.Int("page", page))

	fetched, err := c.remote.FetchPage(ctx, page)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		log.Debug("fetch_page", "discarding stale response", zap.Int("page", page))
		return nil
	}

	if err != nil {
		c.status = StatusError
		c.errMsg = err.Error()
		c.mu.Unlock()

		log.Error("fetch_page", err, zap.Int("page", page))
		c.notify()
		return err
	}

	c.errMsg = ""
	if page == 1 {
		c.projects = append([]domain.Project(nil), fetched...)
	} else {
		c.projects = append(c.projects, fetched...)
	}
	c.loadedPage = page
	c.status = StatusLoaded
	c.mu.Unlock()

	log.Info("fetch_page", "page loaded", zap.Int("page", page), zap.Int("count", len(fetched)))
	c.notify()
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Status:      c.status,
		CurrentPage: c.currentPage,
		Error:       c.errMsg,
		Projects:    append([]domain.Project(nil), c.projects...),
	}
}

// notify delivers the current state to every observer. Deliveries are
// serialized and each one snapshots the state after acquiring notifyMu.
func (c *Controller) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	s := c.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
