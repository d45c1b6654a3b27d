package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/ctxlog"
	"github.com/zarlcorp/codementor/internal/form"
	"github.com/zarlcorp/codementor/internal/screen"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zstyle"
)

const suggestedPasswordLen = 20

// submitResultMsg carries the backend outcome of one attempt back to the
// form instance that started it.
type submitResultMsg struct {
	instance int
	attempt  uint64
	err      error
}

// credentialFormModel renders one mounted sign-in or registration screen.
// Its controller lives exactly as long as the mount.
type credentialFormModel struct {
	spec     screen.Spec
	ctrl     *form.Controller
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	notice   string
	instance int

	ctx     context.Context
	backend auth.Authenticator
	timeout time.Duration

	// suggestFn generates a password for ctrl+g; nil disables suggestions
	suggestFn func(n int) string
}

func newCredentialFormModel(ctx context.Context, spec screen.Spec, backend auth.Authenticator, timeout time.Duration, instance int) credentialFormModel {
	inputs := make([]textinput.Model, len(spec.Fields))
	for i, f := range spec.Fields {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		if f.Masked {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := credentialFormModel{
		spec:     spec,
		ctrl:     spec.NewController(),
		inputs:   inputs,
		spinner:  sp,
		instance: instance,
		ctx:      ctx,
		backend:  backend,
		timeout:  timeout,
	}

	if spec.Action == auth.ActionRegister {
		m.suggestFn = zcrypto.GeneratePassword
	}

	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m credentialFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m credentialFormModel) Update(msg tea.Msg) (credentialFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitResultMsg:
		return m.resolve(msg)

	case spinner.TickMsg:
		if m.ctrl.Status() != form.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInput(msg)
}

func (m credentialFormModel) handleKey(msg tea.KeyMsg) (credentialFormModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// the notice behaves like a modal alert: the next key only dismisses it
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	if msg.Type == tea.KeyEsc {
		return m, navigateCmd(screen.RouteHome)
	}

	switch {
	case key.Matches(msg, keyNextField):
		return m.moveFocus(1), textinput.Blink
	case key.Matches(msg, keyPrevField):
		return m.moveFocus(-1), textinput.Blink
	case key.Matches(msg, keyReveal):
		return m.toggleVisibility(), nil
	case key.Matches(msg, keySwitch):
		return m, navigateCmd(m.spec.Alternate)
	case key.Matches(msg, keySuggest):
		return m.suggestPassword(), nil
	case key.Matches(msg, zstyle.KeyEnter):
		return m.submit()
	}

	return m.updateInput(msg)
}

func (m credentialFormModel) moveFocus(delta int) credentialFormModel {
	n := len(m.inputs)
	if n == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + n) % n
	m.inputs[m.focus].Focus()
	return m
}

func (m credentialFormModel) toggleVisibility() credentialFormModel {
	name := m.spec.Fields[m.focus].Name
	if !m.ctrl.Masked(name) {
		return m
	}
	if m.ctrl.ToggleVisibility(name) {
		m.inputs[m.focus].EchoMode = textinput.EchoNormal
	} else {
		m.inputs[m.focus].EchoMode = textinput.EchoPassword
	}
	return m
}

// suggestPassword fills the password and its confirmation with one
// generated value.
func (m credentialFormModel) suggestPassword() credentialFormModel {
	if m.suggestFn == nil {
		return m
	}
	pw := m.suggestFn(suggestedPasswordLen)
	for i, f := range m.spec.Fields {
		if f.Name == screen.FieldPassword || f.Name == screen.FieldConfirmPassword {
			m.inputs[i].SetValue(pw)
			m.setValue(i)
		}
	}
	return m
}

func (m credentialFormModel) updateInput(msg tea.Msg) (credentialFormModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() != before {
		m.setValue(m.focus)
	}
	return m, cmd
}

// setValue copies input i into the controller, clearing its error.
func (m credentialFormModel) setValue(i int) {
	name := m.spec.Fields[i].Name
	if err := m.ctrl.SetValue(name, m.inputs[i].Value()); err != nil {
		ctxlog.FromContext(m.ctx).Error("set value", "field", name, "err", err)
	}
}

func (m credentialFormModel) submit() (credentialFormModel, tea.Cmd) {
	log := ctxlog.FromContext(m.ctx)

	sub, err := m.ctrl.Submit()
	switch {
	case errors.Is(err, form.ErrInvalid):
		log.Debug("submit rejected", "action", m.spec.Action, "errors", len(m.ctrl.State().Errors()))
		return m.focusFirstError(), nil
	case err != nil:
		// pending or already settled: not re-entrant
		return m, nil
	}

	creds := m.spec.Credentials(sub.Values)
	log.Info("submit", "action", creds.Action, "attempt", sub.ID)

	return m, tea.Batch(
		m.spinner.Tick,
		attemptCmd(m.ctx, m.backend, creds, m.timeout, m.instance, sub.ID),
	)
}

func (m credentialFormModel) focusFirstError() credentialFormModel {
	for i, f := range m.spec.Fields {
		if fld, _ := m.ctrl.State().Field(f.Name); fld.Error != "" {
			return m.moveFocus(i - m.focus)
		}
	}
	return m
}

// attemptCmd calls the backend once, bounded by timeout.
func attemptCmd(ctx context.Context, backend auth.Authenticator, creds auth.Credentials, timeout time.Duration, instance int, attempt uint64) tea.Cmd {
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		err := backend.Attempt(ctx, creds)
		return submitResultMsg{instance: instance, attempt: attempt, err: err}
	}
}

func (m credentialFormModel) resolve(msg submitResultMsg) (credentialFormModel, tea.Cmd) {
	log := ctxlog.FromContext(m.ctx)

	if !m.ctrl.Resolve(msg.attempt, msg.err) {
		log.Debug("stale result dropped", "attempt", msg.attempt)
		return m, nil
	}

	if m.ctrl.Status() == form.Failed {
		log.Warn("submit failed", "action", m.spec.Action, "attempt", msg.attempt, "reason", auth.Reason(msg.err))
		return m, nil
	}

	log.Info("submit succeeded", "action", m.spec.Action, "attempt", msg.attempt)

	if m.spec.Navigates() {
		return m, navigateCmd(m.spec.Success.Navigate)
	}

	m.notice = m.spec.Success.Notice
	m.ctrl.Reset()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m = m.moveFocus(-m.focus)
	return m, nil
}

func (m credentialFormModel) submitButton() button {
	status := m.ctrl.Status()
	return button{
		label:        m.spec.SubmitLabel,
		loadingLabel: m.spec.PendingLabel,
		variant:      buttonPrimary,
		loading:      status == form.Pending,
		disabled:     !status.CanSubmit(),
	}
}

func (m credentialFormModel) View() string {
	s := "\n  " + zstyle.Subtitle.Render(m.spec.Title) + "\n"
	s += "  " + zstyle.MutedText.Render(m.spec.Subtitle) + "\n\n"

	for i, f := range m.spec.Fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-18s", f.Label))
		cursor := "  "
		if i == m.focus {
			cursor = zstyle.Highlight.Render("> ")
		}

		fieldView := m.inputs[i].View()
		if f.Masked {
			state := "hidden"
			if m.ctrl.Visible(f.Name) {
				state = "shown"
			}
			fieldView += " " + zstyle.MutedText.Render("["+state+"]")
		}

		s += fmt.Sprintf("  %s%s %s\n", cursor, label, fieldView)

		// always reserve the error line to prevent layout shift
		if fld, _ := m.ctrl.State().Field(f.Name); fld.Error != "" {
			s += fmt.Sprintf("    %-18s %s\n", "", zstyle.StatusErr.Render(fld.Error))
		} else {
			s += "\n"
		}
	}

	if e := m.ctrl.State().SubmitError(); e != "" {
		s += "  " + zstyle.StatusErr.Render("! "+e) + "\n\n"
	}
	if m.notice != "" {
		s += "  " + zstyle.StatusOK.Render(m.notice) + "\n"
		s += "  " + zstyle.MutedText.Render("press any key") + "\n\n"
	}

	btn := m.submitButton().View()
	if m.ctrl.Status() == form.Pending {
		btn = m.spinner.View() + " " + btn
	}
	s += "  " + btn + "\n"
	return s
}
