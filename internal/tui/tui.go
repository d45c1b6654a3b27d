// Package tui implements the root Bubble Tea model for codementor.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/ctxlog"
	"github.com/zarlcorp/codementor/internal/messages"
	"github.com/zarlcorp/codementor/internal/screen"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type viewID int

const (
	viewHome viewID = iota
	viewLogin
	viewRegister
)

var routes = map[string]viewID{
	screen.RouteHome:     viewHome,
	screen.RouteLogin:    viewLogin,
	screen.RouteRegister: viewRegister,
}

// navigateMsg tells the root model to switch routes.
type navigateMsg struct {
	path string
}

func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// Options configures the root model.
type Options struct {
	Version       string
	Backend       auth.Authenticator
	Catalog       *messages.Catalog
	SubmitTimeout time.Duration
	Start         string
	Logger        *slog.Logger
}

// Model is the root TUI model.
type Model struct {
	ctx     context.Context
	version string
	backend auth.Authenticator
	catalog *messages.Catalog
	timeout time.Duration
	logger  *slog.Logger

	active viewID
	path   string
	home   homeModel
	form   credentialFormModel

	// mounted form screen
	instance int
	cancel   context.CancelFunc

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model mounted at opts.Start.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = messages.Must("en")
	}

	m := Model{
		ctx:     ctx,
		version: opts.Version,
		backend: auth.Guard(opts.Backend),
		catalog: catalog,
		timeout: opts.SubmitTimeout,
		logger:  logger,
	}

	start := opts.Start
	if start == "" {
		start = screen.RouteHome
	}
	m, _ = m.navigate(start)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.active == viewHome {
		return m.home.Init()
	}
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home = m.home.resize(msg.Width, msg.Height)
		return m, nil

	case navigateMsg:
		return m.navigate(msg.path)

	case submitResultMsg:
		if m.active == viewHome || msg.instance != m.instance {
			m.logger.Debug("result for unmounted screen dropped", "instance", msg.instance, "attempt", msg.attempt)
			return m, nil
		}
	}

	return m.updateActive(msg)
}

// navigate unmounts the current screen and mounts the one at path.
func (m Model) navigate(path string) (Model, tea.Cmd) {
	id, ok := routes[path]
	if !ok {
		m.logger.Warn("unknown route", "path", path)
		path, id = screen.RouteHome, viewHome
	}

	m.unmount()
	m.active = id
	m.path = path

	switch id {
	case viewLogin:
		return m.mountForm(screen.SignIn(m.catalog))
	case viewRegister:
		return m.mountForm(screen.Registration(m.catalog))
	}

	m.home = newHomeModel(m.version, m.width, m.height)
	return m, m.home.Init()
}

func (m Model) mountForm(spec screen.Spec) (Model, tea.Cmd) {
	m.instance++
	ctx, cancel := context.WithCancel(m.ctx)
	ctx = ctxlog.WithLogger(ctx, m.logger.With("route", spec.Route, "mount", m.instance))
	m.cancel = cancel

	m.form = newCredentialFormModel(ctx, spec, m.backend, m.timeout, m.instance)
	return m, m.form.Init()
}

// unmount abandons any attempt started by the mounted form.
func (m *Model) unmount() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case viewHome:
		m.home, cmd = m.home.Update(msg)
	case viewLogin, viewRegister:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

// Path returns the active route.
func (m Model) Path() string { return m.path }

func (m Model) View() string {
	// home draws its own scroll-aware header
	if m.active == viewHome {
		return m.home.View()
	}

	header := zstyle.RenderHeader("codementor", viewTitle(m.active), colorBlue)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + m.form.View() + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewLogin:
		return "Sign In"
	case viewRegister:
		return "Sign Up"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewLogin:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+t", Desc: "show/hide"},
			{Key: "enter", Desc: "sign in"},
			{Key: "ctrl+n", Desc: "sign up"},
			{Key: "esc", Desc: "home"},
		}
	case viewRegister:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+t", Desc: "show/hide"},
			{Key: "ctrl+g", Desc: "suggest"},
			{Key: "enter", Desc: "create"},
			{Key: "ctrl+n", Desc: "sign in"},
			{Key: "esc", Desc: "home"},
		}
	}
	return []zstyle.HelpPair{
		{Key: "l", Desc: "log in"},
		{Key: "s", Desc: "sign up"},
		{Key: "j/k", Desc: "scroll"},
		{Key: "q", Desc: "quit"},
	}
}
