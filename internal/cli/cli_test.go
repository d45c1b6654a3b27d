package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/form"
	"github.com/zarlcorp/codementor/internal/messages"
)

// passwords returns a reader that answers prompts in order.
func passwords(answers ...string) PasswordReader {
	return func(string) (string, error) {
		if len(answers) == 0 {
			return "", errors.New("no more answers")
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
}

func session(backend auth.Authenticator, out *bytes.Buffer, answers ...string) Session {
	return Session{
		Backend:      backend,
		Catalog:      messages.Must("en"),
		Out:          out,
		ReadPassword: passwords(answers...),
	}
}

func TestCmdLogin(t *testing.T) {
	var got auth.Credentials
	backend := auth.Func(func(_ context.Context, c auth.Credentials) error {
		got = c
		return nil
	})

	var out bytes.Buffer
	s := session(backend, &out, "hunter22")
	if err := s.CmdLogin(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if got.Email != "jane@example.com" || got.Password != "hunter22" {
		t.Errorf("credentials = %+v", got)
	}
	if got.Action != auth.ActionSignIn {
		t.Errorf("action = %q", got.Action)
	}
	if !strings.Contains(out.String(), "signed in as jane@example.com") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCmdLoginEmptyPassword(t *testing.T) {
	called := false
	backend := auth.Func(func(context.Context, auth.Credentials) error {
		called = true
		return nil
	})

	var out bytes.Buffer
	s := session(backend, &out, "")
	err := s.CmdLogin(context.Background(), "jane@example.com")

	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if called {
		t.Error("backend should not be called")
	}
	if !strings.Contains(out.String(), "Password is required") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCmdLoginRejected(t *testing.T) {
	backend := auth.Func(func(context.Context, auth.Credentials) error {
		return &auth.Failure{Reason: "unknown user"}
	})

	var out bytes.Buffer
	s := session(backend, &out, "hunter22")
	err := s.CmdLogin(context.Background(), "jane@example.com")

	if !errors.Is(err, ErrFailed) {
		t.Fatalf("err = %v, want ErrFailed", err)
	}
	if !strings.Contains(err.Error(), "Invalid email or password") {
		t.Errorf("err = %q, want generic message", err.Error())
	}
	if strings.Contains(err.Error(), "unknown user") {
		t.Error("backend reason should not be shown")
	}
}

func TestCmdLoginReadError(t *testing.T) {
	var out bytes.Buffer
	s := session(auth.Func(func(context.Context, auth.Credentials) error { return nil }), &out)
	if err := s.CmdLogin(context.Background(), "jane@example.com"); err == nil {
		t.Error("read failure should be returned")
	}
}

func TestCmdRegister(t *testing.T) {
	sim := auth.NewSimulated(0)

	var out bytes.Buffer
	s := session(sim, &out, "s3cret", "s3cret")
	if err := s.CmdRegister(context.Background(), "jane", "jane@example.com"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !strings.Contains(out.String(), "Registration successful!") {
		t.Errorf("output = %q", out.String())
	}
	if sim.Attempts() != 1 {
		t.Errorf("attempts = %d, want 1", sim.Attempts())
	}
}

func TestCmdRegisterMismatch(t *testing.T) {
	sim := auth.NewSimulated(0)

	var out bytes.Buffer
	s := session(sim, &out, "s3cret", "secret")
	err := s.CmdRegister(context.Background(), "jane", "jane@example.com")

	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(out.String(), "Passwords do not match") {
		t.Errorf("output = %q", out.String())
	}
	if sim.Attempts() != 0 {
		t.Errorf("attempts = %d, want 0", sim.Attempts())
	}
}

func TestCmdRegisterFailure(t *testing.T) {
	sim := auth.NewSimulated(0, auth.WithOutcome(auth.ErrRejected))

	var out bytes.Buffer
	s := session(sim, &out, "s3cret", "s3cret")
	err := s.CmdRegister(context.Background(), "jane", "jane@example.com")

	if !errors.Is(err, ErrFailed) {
		t.Fatalf("err = %v, want ErrFailed", err)
	}
	if !strings.Contains(err.Error(), "Registration failed. Please try again.") {
		t.Errorf("err = %q", err.Error())
	}
}
