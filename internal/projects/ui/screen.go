// Package ui composes the Projects screen: the paginated collection, the
// single-item edit selection and the edit form.
package ui

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/editor"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/form"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/page"
)

var (
	ErrUnknownProject = errors.New("project is not in the loaded collection")
	ErrNotEditing     = errors.New("no project is being edited")
)

// Row is one entry of the rendered list: either a card or the open form.
type Row struct {
	Mode editor.Mode
	Card Card
	Form *form.Form
}

// View is everything needed to draw the screen.
type View struct {
	Status      page.Status
	CurrentPage int
	Error       string
	Rows        []Row
}

// Screen wires the page controller to the edit coordinator.
type Screen struct {
	page   *page.Controller
	editor *editor.Coordinator
}

// New builds a screen reading from and saving to remote.
func New(remote page.Remote, log *logging.Logger) *Screen {
	return &Screen{
		page:   page.New(remote, log),
		editor: editor.New(),
	}
}

// Page exposes the underlying controller, e.g. to subscribe to state changes.
func (s *Screen) Page() *page.Controller {
	return s.page
}

// Editor exposes the edit coordinator.
func (s *Screen) Editor() *editor.Coordinator {
	return s.editor
}

func (s *Screen) Mount(ctx context.Context) error {
	return s.page.Mount(ctx)
}

func (s *Screen) LoadMore(ctx context.Context) error {
	return s.page.LoadMore(ctx)
}

func (s *Screen) Refresh(ctx context.Context) error {
	return s.page.Refresh(ctx)
}

// Edit opens the form for the loaded project with the given id.
func (s *Screen) Edit(id int64) (*form.Form, error) {
	for _, p := range s.page.Projects() {
		if p.ID == id {
			return s.editor.BeginEdit(p), nil
		}
	}
	return nil, ErrUnknownProject
}

// Cancel closes the form without saving.
func (s *Screen) Cancel() {
	s.editor.CancelEdit()
}

// Change forwards a field change to the open form.
func (s *Screen) Change(in form.Input) error {
	f, ok := s.editor.Form()
	if !ok {
		return ErrNotEditing
	}
	f.Change(in)
	return nil
}

// Submit saves the open form's candidate when it is valid. It reports false
// without error when the candidate is invalid. A successful save closes the form;
// a failed one keeps it open and returns the error, which is also recorded on the page.
func (s *Screen) Submit(ctx context.Context) (bool, error) {
	f, ok := s.editor.Form()
	if !ok {
		return false, ErrNotEditing
	}

	var candidate domain.Project
	if !f.Submit(func(p domain.Project) { candidate = p }) {
		return false, nil
	}

	saved, err := s.page.Save(ctx, candidate)
	if err != nil {
		return true, err
	}
	s.editor.Saved(saved)
	return true, nil
}

// View renders the current state.
func (s *Screen) View() View {
	snap := s.page.Snapshot()
	items := s.editor.Render(snap.Projects)

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{Mode: item.Mode, Card: NewCard(item.Project)}
		if item.Mode == editor.ModeForm {
			row.Form = item.Form
		}
		rows = append(rows, row)
	}

	return View{
		Status:      snap.Status,
		CurrentPage: snap.CurrentPage,
		Error:       snap.Error,
		Rows:        rows,
	}
}
