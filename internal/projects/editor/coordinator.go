// Package editor tracks which single project, if any, is being edited.
package editor

import (
	"sync"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/form"
)

// Mode tells how a project should be shown.
type Mode int

const (
	ModeCard Mode = iota
	ModeForm
)

func (m Mode) String() string {
	if m == ModeForm {
		return "form"
	}
	return "card"
}

// Item is one rendered entry of the project list.
type Item struct {
	Project domain.Project
	Mode    Mode
	Form    *form.Form
}

// Coordinator holds the edit selection. The selection is keyed by project id.
type Coordinator struct {
	mu       sync.RWMutex
	selected int64
	active   bool
	form     *form.Form
}

// New returns a coordinator with nothing selected.
func New() *Coordinator {
	return &Coordinator{}
}

// BeginEdit selects p and opens a form seeded with it. Any previous selection is dropped.
func (c *Coordinator) BeginEdit(p domain.Project) *form.Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = p.ID
	c.active = true
	c.form = form.New(p)
	return c.form
}

// CancelEdit clears the selection.
func (c *Coordinator) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// Saved exits edit mode when p is the project being edited.
func (c *Coordinator) Saved(p domain.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active && c.selected == p.ID {
		c.clear()
	}
}

// Selected returns the id being edited.
func (c *Coordinator) Selected() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected, c.active
}

// Editing reports whether the project with the given id is being edited.
func (c *Coordinator) Editing(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active && c.selected == id
}

// Form returns the open form, if any.
func (c *Coordinator) Form() (*form.Form, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form, c.active
}

// Render decides, for each project, whether it is shown as a card or as the edit form.
func (c *Coordinator) Render(projects []domain.Project) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Item, 0, len(projects))
	for _, p := range projects {
		item := Item{Project: p, Mode: ModeCard}
		if c.active && c.selected == p.ID {
			item.Mode = ModeForm
			item.Form = c.form
		}
		items = append(items, item)
	}
	return items
}

func (c *Coordinator) clear() {
	c.selected = 0
	c.active = false
	c.form = nil
}
