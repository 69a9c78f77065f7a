package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/miniapp"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/editor"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/form"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/page"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/ui"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/validation"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/telegram/webapp"
)

// maxSearchPages bounds how far edit pages through the collection looking for an id.
const maxSearchPages = 50

// remote is what the CLI needs from the API client.
type remote interface {
	page.Remote
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
}

// app hosts the Projects screen inside a local mini app session.
type app struct {
	api     remote
	screen  *ui.Screen
	bridge  *webapp.LocalBridge
	session *miniapp.Session
	out     io.Writer

	unbind    func()
	closeOnce sync.Once
}

func newApp(ctx context.Context, api remote, initData string, out io.Writer, log *logging.Logger) (*app, error) {
	provider := webapp.NewProvider()
	bridge := webapp.NewLocalBridge(initData)
	if err := provider.Provide(bridge); err != nil {
		return nil, err
	}

	session := miniapp.NewSession(provider, miniapp.SessionOptions{Logger: log})
	if _, err := session.Start(ctx); err != nil {
		return nil, err
	}

	screen := ui.New(api, log)
	return &app{
		api:     api,
		screen:  screen,
		bridge:  bridge,
		session: session,
		out:     out,
		unbind:  miniapp.BindButton(screen.Page(), bridge),
	}, nil
}

func (a *app) close() {
	a.closeOnce.Do(func() {
		a.unbind()
		a.session.Stop()
	})
}

func (a *app) runList(ctx context.Context, args []string) error {
	pages := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page count %q", args[0])
		}
		pages = n
	}

	if err := a.screen.Mount(ctx); err != nil {
		return err
	}
	for i := 1; i < pages; i++ {
		before := len(a.screen.Page().Projects())
		if err := a.screen.LoadMore(ctx); err != nil {
			return err
		}
		if len(a.screen.Page().Projects()) == before {
			break
		}
	}

	a.printView()
	return nil
}

func (a *app) runEdit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: edit <id> field=value...")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	inputs, err := parseInputs(args[1:])
	if err != nil {
		return err
	}

	if err := a.load(ctx, id); err != nil {
		return err
	}
	if _, err := a.screen.Edit(id); err != nil {
		return fmt.Errorf("project %d: %w", id, err)
	}
	for _, in := range inputs {
		if err := a.screen.Change(in); err != nil {
			return err
		}
	}

	f, _ := a.screen.Editor().Form()
	submitted, err := a.screen.Submit(ctx)
	if err != nil {
		return err
	}
	if !submitted {
		printErrors(a.out, f.Errors())
		return errors.New("project not saved: the form has errors")
	}

	a.printView()
	return nil
}

func (a *app) runSeed(ctx context.Context) error {
	for _, p := range seedProjects {
		created, err := a.api.Create(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created #%d %s\n", created.ID, created.Name)
	}
	return nil
}

func (a *app) runClose() error {
	a.bridge.Emit(webapp.EventMainButtonClicked)
	a.session.Wait()
	for _, q := range a.bridge.Queries() {
		fmt.Fprintf(a.out, "switch inline query: %q\n", q)
	}
	return nil
}

// load pages through the collection until id is loaded or the pages run out.
func (a *app) load(ctx context.Context, id int64) error {
	if err := a.screen.Mount(ctx); err != nil {
		return err
	}
	for i := 1; i < maxSearchPages; i++ {
		projects := a.screen.Page().Projects()
		for _, p := range projects {
			if p.ID == id {
				return nil
			}
		}
		if err := a.screen.LoadMore(ctx); err != nil {
			return err
		}
		if len(a.screen.Page().Projects()) == len(projects) {
			break
		}
	}
	return nil
}

func (a *app) printView() {
	v := a.screen.View()
	fmt.Fprintf(a.out, "page %d, %d projects (%s)\n", v.CurrentPage, len(v.Rows), v.Status)
	if v.Error != "" {
		fmt.Fprintf(a.out, "error: %s\n", v.Error)
	}
	for _, row := range v.Rows {
		c := row.Card
		state := "inactive"
		if c.IsActive {
			state = "active"
		}
		marker := " "
		if row.Mode == editor.ModeForm {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s #%-4d %-24s %12s  %-8s %s\n", marker, c.ID, c.Name, c.Budget, state, c.Description)
	}
}

// parseInputs turns field=value arguments into form inputs typed like the
// edit form fields.
func parseInputs(args []string) ([]form.Input, error) {
	out := make([]form.Input, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want field=value", arg)
		}
		in := form.Input{Name: name, Value: value}
		switch name {
		case validation.FieldName, form.FieldImageURL:
			in.Type = form.TypeText
		case validation.FieldDescription:
			in.Type = form.TypeTextarea
		case validation.FieldBudget:
			in.Type = form.TypeNumber
		case form.FieldIsActive:
			checked, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q", name, value)
			}
			in.Type = form.TypeCheckbox
			in.Checked = checked
		default:
			return nil, fmt.Errorf("unknown field %q", name)
		}
		out = append(out, in)
	}
	return out, nil
}

func printErrors(w io.Writer, errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for field, msg := range errs {
		if msg != "" {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "%s: %s\n", field, errs[field])
	}
}
