// Package cli implements codementor's command-line subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/ctxlog"
	"github.com/zarlcorp/codementor/internal/form"
	"github.com/zarlcorp/codementor/internal/messages"
	"github.com/zarlcorp/codementor/internal/screen"
	"golang.org/x/term"
)

// PasswordReader prompts for and returns a secret.
type PasswordReader func(prompt string) (string, error)

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// TerminalPassword reads passwords from the controlling terminal,
// prompting on stderr.
func TerminalPassword(prompt string) (string, error) {
	return ReadPassword(prompt, os.Stderr)
}

// Session runs the credential screens without the TUI.
type Session struct {
	Backend      auth.Authenticator
	Catalog      *messages.Catalog
	Timeout      time.Duration
	Out          io.Writer
	ReadPassword PasswordReader
}

// ErrFailed is returned when the backend refuses an attempt. The wrapping
// error carries the screen's failure message.
var ErrFailed = errors.New("attempt failed")

// CmdLogin signs in with email, prompting for the password.
func (s Session) CmdLogin(ctx context.Context, email string) error {
	pass, err := s.ReadPassword("password: ")
	if err != nil {
		return err
	}

	spec := screen.SignIn(s.Catalog)
	if err := s.run(ctx, spec, form.Values{
		screen.FieldEmail:    email,
		screen.FieldPassword: pass,
	}); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "signed in as %s\n", email)
	return nil
}

// CmdRegister creates an account, prompting for the password twice.
func (s Session) CmdRegister(ctx context.Context, username, email string) error {
	pass, err := s.ReadPassword("password: ")
	if err != nil {
		return err
	}
	confirm, err := s.ReadPassword("confirm password: ")
	if err != nil {
		return err
	}

	spec := screen.Registration(s.Catalog)
	if err := s.run(ctx, spec, form.Values{
		screen.FieldUsername:        username,
		screen.FieldEmail:           email,
		screen.FieldPassword:        pass,
		screen.FieldConfirmPassword: confirm,
	}); err != nil {
		return err
	}

	fmt.Fprintln(s.Out, spec.Success.Notice)
	return nil
}

// run drives one controller through a single synchronous attempt.
func (s Session) run(ctx context.Context, spec screen.Spec, values form.Values) error {
	log := ctxlog.FromContext(ctx)

	ctrl := spec.NewController()
	for name, v := range values {
		if err := ctrl.SetValue(name, v); err != nil {
			return err
		}
	}

	sub, err := ctrl.Submit()
	if errors.Is(err, form.ErrInvalid) {
		for _, f := range ctrl.State().Fields() {
			if f.Error != "" {
				fmt.Fprintf(s.Out, "  %s\n", f.Error)
			}
		}
		return fmt.Errorf("%s: %w", spec.Action, err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", spec.Action, err)
	}

	actx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	log.Info("submit", "action", spec.Action, "attempt", sub.ID)
	attemptErr := auth.Guard(s.Backend).Attempt(actx, spec.Credentials(sub.Values))
	ctrl.Resolve(sub.ID, attemptErr)

	if ctrl.Status() == form.Failed {
		log.Warn("submit failed", "action", spec.Action, "reason", auth.Reason(attemptErr))
		return fmt.Errorf("%s: %w", ctrl.State().SubmitError(), ErrFailed)
	}

	log.Info("submit succeeded", "action", spec.Action)
	return nil
}
