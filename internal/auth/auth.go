// Package auth defines the authentication backend consumed by the
// credential forms, plus a simulated implementation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/atomic"
)

// Action names what a credential attempt is for.
type Action string

const (
	ActionSignIn   Action = "sign-in"
	ActionRegister Action = "register"
)

// Credentials are handed to the backend once per submission.
type Credentials struct {
	Action   Action
	Username string
	Email    string
	Password string
}

// ErrRejected is the modeled failure: the backend refused the credentials.
var ErrRejected = errors.New("credentials rejected")

// Failure carries a backend-supplied reason for a rejection.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string {
	if f.Reason == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + f.Reason
}

func (f *Failure) Unwrap() error { return ErrRejected }

// Authenticator attempts a sign-in or registration.
type Authenticator interface {
	Attempt(ctx context.Context, c Credentials) error
}

// Func adapts a function to Authenticator.
type Func func(ctx context.Context, c Credentials) error

func (f Func) Attempt(ctx context.Context, c Credentials) error { return f(ctx, c) }

// DefaultLatency is the simulated round trip.
const DefaultLatency = time.Second

// Simulated waits a fixed latency and then returns its configured outcome.
type Simulated struct {
	latency  time.Duration
	outcome  error
	attempts *atomic.Int64
}

// SimulatedOption configures a Simulated backend.
type SimulatedOption func(*Simulated)

// WithOutcome makes every attempt end with err instead of success.
func WithOutcome(err error) SimulatedOption {
	return func(s *Simulated) { s.outcome = err }
}

// NewSimulated returns a backend that succeeds after latency.
func NewSimulated(latency time.Duration, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		latency:  latency,
		attempts: atomic.NewInt64(0),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Simulated) Attempt(ctx context.Context, c Credentials) error {
	s.attempts.Inc()

	t := time.NewTimer(s.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", c.Action, ctx.Err())
	case <-t.C:
		return s.outcome
	}
}

// Attempts returns how many attempts were started.
func (s *Simulated) Attempts() int64 { return s.attempts.Load() }

// Guard wraps an authenticator so a panic inside it surfaces as an error.
func Guard(a Authenticator) Authenticator {
	return Func(func(ctx context.Context, c Credentials) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: backend panic: %v", c.Action, r)
			}
		}()
		return a.Attempt(ctx, c)
	})
}

// Reason extracts a human-readable reason from a backend error for logs.
func Reason(err error) string {
	var f *Failure
	switch {
	case err == nil:
		return ""
	case errors.As(err, &f) && f.Reason != "":
		return f.Reason
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return err.Error()
}
