package page

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

type fetchResult struct {
	projects []domain.Project
	err      error
}

// fakeRemote returns queued results per page, in order.
type fakeRemote struct {
	mu      sync.Mutex
	pages   map[int][]fetchResult
	saveErr error
	saveFn  func(domain.Project) domain.Project
	fetched []int
	saved   []domain.Project
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{pages: make(map[int][]fetchResult)}
}

func (f *fakeRemote) queue(page int, projects []domain.Project, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[page] = append(f.pages[page], fetchResult{projects: projects, err: err})
}

func (f *fakeRemote) FetchPage(_ context.Context, page int) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, page)

	q := f.pages[page]
	if len(q) == 0 {
		return []domain.Project{}, nil
	}
	res := q[0]
	f.pages[page] = q[1:]
	return res.projects, res.err
}

func (f *fakeRemote) Save(_ context.Context, p domain.Project) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	if f.saveErr != nil {
		return domain.Project{}, f.saveErr
	}
	if f.saveFn != nil {
		return f.saveFn(p), nil
	}
	return p, nil
}

func project(id int64, name string) domain.Project {
	return domain.Project{ID: id, Name: name, Description: name + " description", Budget: float64(id) * 100}
}

func ids(ps []domain.Project) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestController_InitialState(t *testing.T) {
	c := New(newFakeRemote(), nil)
	snap := c.Snapshot()

	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Empty(t, snap.Projects)
}

func TestController_MountLoadsFirstPage(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a"), project(2, "b")}, nil)
	c := New(remote, nil)

	require.NoError(t, c.Mount(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, []int64{1, 2}, ids(snap.Projects))
	assert.Empty(t, snap.Error)
}

func TestController_PageOneReplaces(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a"), project(2, "b")}, nil)
	remote.queue(1, []domain.Project{project(5, "e")}, nil)
	c := New(remote, nil)
	ctx := context.Background()

	require.NoError(t, c.Mount(ctx))
	require.NoError(t, c.Refresh(ctx))

	assert.Equal(t, []int64{5}, ids(c.Projects()))
}

func TestController_LoadMoreAppends(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a"), project(2, "b")}, nil)
	remote.queue(2, []domain.Project{project(3, "c"), project(4, "d")}, nil)
	c := New(remote, nil)
	ctx := context.Background()

	require.NoError(t, c.Mount(ctx))
	require.NoError(t, c.LoadMore(ctx))

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.CurrentPage)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(snap.Projects))
}

func TestController_EmptyPageIsNotAnError(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	c := New(remote, nil)
	ctx := context.Background()

	require.NoError(t, c.Mount(ctx))
	require.NoError(t, c.LoadMore(ctx))

	snap := c.Snapshot()
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Equal(t, []int64{1}, ids(snap.Projects))
}

func TestController_FetchFailureKeepsCollection(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	remote.queue(2, nil, errors.New("There was an error retrieving the projects."))
	remote.queue(2, []domain.Project{project(2, "b")}, nil)
	c := New(remote, nil)
	ctx := context.Background()

	require.NoError(t, c.Mount(ctx))

	err := c.LoadMore(ctx)
	require.Error(t, err)
	snap := c.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "There was an error retrieving the projects.", snap.Error)
	assert.Equal(t, []int64{1}, ids(snap.Projects))

	// retrying asks for the same page again and clears the error
	require.NoError(t, c.LoadMore(ctx))
	snap = c.Snapshot()
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Equal(t, []int64{1, 2}, ids(snap.Projects))
	assert.Equal(t, []int{1, 2, 2}, remote.fetched)
}

func TestController_SaveReconcilesById(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a"), project(2, "b"), project(3, "c")}, nil)
	remote.saveFn = func(p domain.Project) domain.Project {
		return p.With(domain.Patch{Description: domain.Ptr("confirmed")})
	}
	c := New(remote, nil)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	edited := project(2, "b").With(domain.Patch{Name: domain.Ptr("bee")})
	saved, err := c.Save(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", saved.Description)

	got := c.Projects()
	assert.Equal(t, []int64{1, 2, 3}, ids(got))
	assert.Equal(t, project(1, "a"), got[0])
	assert.Equal(t, "bee", got[1].Name)
	assert.Equal(t, "confirmed", got[1].Description)
	assert.Equal(t, project(3, "c"), got[2])
}

func TestController_SaveFailureKeepsCollection(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	remote.saveErr = errors.New("There was an error updating the project.")
	c := New(remote, nil)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	_, err := c.Save(ctx, project(1, "changed"))
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "There was an error updating the project.", snap.Error)
	assert.Equal(t, []domain.Project{project(1, "a")}, snap.Projects)
}

// blockingRemote holds page fetches until released, to order responses by hand.
type blockingRemote struct {
	fakeRemote
	gates map[int]chan struct{}
}

func (b *blockingRemote) FetchPage(ctx context.Context, page int) ([]domain.Project, error) {
	b.mu.Lock()
	gate := b.gates[page]
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return b.fakeRemote.FetchPage(ctx, page)
}

func TestController_StaleResponseIsDiscarded(t *testing.T) {
	remote := &blockingRemote{
		fakeRemote: fakeRemote{pages: make(map[int][]fetchResult)},
		gates:      map[int]chan struct{}{2: make(chan struct{})},
	}
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	remote.queue(1, []domain.Project{project(9, "fresh")}, nil)
	remote.queue(2, []domain.Project{project(2, "late")}, nil)
	c := New(remote, nil)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	loading := make(chan struct{})
	unsubscribe := c.Subscribe(func(s Snapshot) {
		if s.Loading() && s.CurrentPage == 2 {
			close(loading)
		}
	})

	done := make(chan error, 1)
	go func() { done <- c.LoadMore(ctx) }()
	<-loading
	unsubscribe()

	// a refresh supersedes the page-2 request still in flight
	require.NoError(t, c.Refresh(ctx))
	close(remote.gates[2])
	require.NoError(t, <-done)

	snap := c.Snapshot()
	assert.Equal(t, []int64{9}, ids(snap.Projects))
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, StatusLoaded, snap.Status)
}

func TestController_LoadMoreIgnoredWhileLoading(t *testing.T) {
	remote := &blockingRemote{
		fakeRemote: fakeRemote{pages: make(map[int][]fetchResult)},
		gates:      map[int]chan struct{}{1: make(chan struct{})},
	}
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	c := New(remote, nil)
	ctx := context.Background()

	loading := make(chan struct{})
	var once sync.Once
	c.Subscribe(func(s Snapshot) {
		if s.Loading() {
			once.Do(func() { close(loading) })
		}
	})

	done := make(chan error, 1)
	go func() { done <- c.Mount(ctx) }()
	<-loading

	require.NoError(t, c.LoadMore(ctx))
	close(remote.gates[1])
	require.NoError(t, <-done)

	assert.Equal(t, []int{1}, remote.fetched)
	assert.Equal(t, 1, c.Snapshot().CurrentPage)
}

func TestController_LastNotificationCarriesLatestState(t *testing.T) {
	remote := &blockingRemote{
		fakeRemote: fakeRemote{pages: make(map[int][]fetchResult)},
		gates:      map[int]chan struct{}{},
	}
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	c := New(remote, nil)
	ctx := context.Background()
	require.NoError(t, c.Mount(ctx))

	gate := make(chan struct{})
	remote.mu.Lock()
	remote.gates[1] = gate
	remote.mu.Unlock()

	var (
		mu        sync.Mutex
		calls     int
		delivered []Status
	)
	refreshing := make(chan struct{})
	inSave := make(chan struct{})
	hold := make(chan struct{})
	c.Subscribe(func(s Snapshot) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		switch n {
		case 1:
			close(refreshing)
		case 2:
			// the save notification is slow to reach this observer
			close(inSave)
			<-hold
		}

		mu.Lock()
		delivered = append(delivered, s.Status)
		mu.Unlock()
	})

	refreshDone := make(chan error, 1)
	go func() { refreshDone <- c.Refresh(ctx) }()
	<-refreshing

	saveDone := make(chan error, 1)
	go func() {
		_, err := c.Save(ctx, project(1, "renamed"))
		saveDone <- err
	}()
	<-inSave

	close(gate)
	time.Sleep(20 * time.Millisecond)
	close(hold)

	require.NoError(t, <-saveDone)
	require.NoError(t, <-refreshDone)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, delivered)
	assert.Equal(t, StatusLoaded, delivered[len(delivered)-1])
	assert.Equal(t, c.Snapshot().Status, delivered[len(delivered)-1])
}

func TestController_SubscribeSeesTransitions(t *testing.T) {
	remote := newFakeRemote()
	remote.queue(1, []domain.Project{project(1, "a")}, nil)
	c := New(remote, nil)

	var statuses []Status
	unsubscribe := c.Subscribe(func(s Snapshot) { statuses = append(statuses, s.Status) })
	require.NoError(t, c.Mount(context.Background()))
	unsubscribe()
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []Status{StatusLoading, StatusLoaded}, statuses)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "error", StatusError.String())
}
