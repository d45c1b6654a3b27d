package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/form"
	"github.com/zarlcorp/codementor/internal/screen"
)

// follow runs cmd and feeds results and navigations back into the model
// until no more arrive.
func follow(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case submitResultMsg:
			var next tea.Cmd
			m, next = update(m, msg)
			m = follow(t, m, next)
		case navigateMsg:
			m, _ = update(m, msg)
		}
	}
	return m
}

func TestIntegrationSignInFlow(t *testing.T) {
	sim := auth.NewSimulated(0)
	m := newRoot(t, screen.RouteHome, sim)

	m, cmd := update(m, keyMsg('l'))
	m = follow(t, m, cmd)
	if m.Path() != screen.RouteLogin {
		t.Fatalf("path = %q, want /login", m.Path())
	}

	m = typeRoot(m, "jane@example.com")
	m, _ = update(m, specialKey(tea.KeyTab))
	m = typeRoot(m, "hunter22")

	m, cmd = update(m, enterKey())
	if !strings.Contains(m.View(), "Signing in...") {
		t.Error("pending label should render")
	}

	m = follow(t, m, cmd)
	if m.Path() != screen.RouteHome {
		t.Errorf("path = %q, want /", m.Path())
	}
	if sim.Attempts() != 1 {
		t.Errorf("attempts = %d, want 1", sim.Attempts())
	}
}

func TestIntegrationRejectedSignIn(t *testing.T) {
	sim := auth.NewSimulated(0, auth.WithOutcome(auth.ErrRejected))
	m := signInRoot(t, sim)

	m, cmd := update(m, enterKey())
	m = follow(t, m, cmd)

	if m.Path() != screen.RouteLogin {
		t.Errorf("path = %q, want /login", m.Path())
	}
	if m.form.ctrl.Status() != form.Failed {
		t.Errorf("status = %s, want failed", m.form.ctrl.Status())
	}
	if !strings.Contains(m.View(), "Invalid email or password") {
		t.Error("view should show failure banner")
	}
}

func TestIntegrationSwitchScreens(t *testing.T) {
	m := newRoot(t, screen.RouteLogin, succeed())

	m, cmd := update(m, specialKey(tea.KeyCtrlN))
	m = follow(t, m, cmd)
	if m.Path() != screen.RouteRegister {
		t.Fatalf("path = %q, want /register", m.Path())
	}

	m, cmd = update(m, escKey())
	m = follow(t, m, cmd)
	if m.Path() != screen.RouteHome {
		t.Errorf("path = %q, want /", m.Path())
	}
}

func TestIntegrationRegisterFlow(t *testing.T) {
	sim := auth.NewSimulated(0)
	m := newRoot(t, screen.RouteRegister, sim)

	for i, v := range []string{"jane", "jane@example.com", "s3cret", "s3cret"} {
		if i > 0 {
			m, _ = update(m, specialKey(tea.KeyTab))
		}
		m = typeRoot(m, v)
	}

	m, cmd := update(m, enterKey())
	m = follow(t, m, cmd)

	if m.Path() != screen.RouteRegister {
		t.Errorf("path = %q, registration should stay", m.Path())
	}
	if !strings.Contains(m.View(), "Registration successful!") {
		t.Error("view should show notice")
	}
	if sim.Attempts() != 1 {
		t.Errorf("attempts = %d, want 1", sim.Attempts())
	}
}

func TestIntegrationPanickingBackend(t *testing.T) {
	backend := auth.Func(func(context.Context, auth.Credentials) error {
		panic("backend exploded")
	})
	m := signInRoot(t, backend)

	m, cmd := update(m, enterKey())
	m = follow(t, m, cmd)

	if m.form.ctrl.Status() != form.Failed {
		t.Errorf("status = %s, want failed", m.form.ctrl.Status())
	}
}
