package form

import "errors"

// Status is the submission lifecycle state of a form.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// CanSubmit reports whether the submit control is interactive. Only Idle
// and Failed accept a new attempt.
func (s Status) CanSubmit() bool {
	return s == Idle || s == Failed
}

var (
	// ErrInvalid is returned by Submit when validation fails. Field errors
	// are populated and the status is unchanged.
	ErrInvalid = errors.New("form invalid")

	// ErrInFlight is returned by Submit while an attempt is pending.
	ErrInFlight = errors.New("submission in flight")

	// ErrSettled is returned by Submit after success until the form is reset.
	ErrSettled = errors.New("submission already succeeded")
)

// Submission is an accepted attempt: its id and the values captured when
// it entered Pending.
type Submission struct {
	ID     uint64
	Values Values
}

// Controller owns one form instance: its fields, rules, visibility and
// lifecycle. It is not safe for concurrent use; the owning screen drives
// it from a single event loop.
type Controller struct {
	state      *State
	rules      RuleSet
	visibility Visibility
	status     Status
	failure    string
	attempt    uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMasked declares fields whose display can be toggled.
func WithMasked(fields ...string) Option {
	return func(c *Controller) {
		c.visibility = NewVisibility(fields...)
	}
}

// NewController builds a controller for the given fields. failure is the
// user-facing message shown when an attempt fails, whatever the cause.
func NewController(fields []string, rules RuleSet, failure string, opts ...Option) *Controller {
	c := &Controller{
		state:   NewState(fields...),
		rules:   rules,
		failure: failure,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State exposes the field store for rendering.
func (c *Controller) State() *State { return c.state }

// Status returns the current lifecycle state.
func (c *Controller) Status() Status { return c.status }

// SetValue records user input for a field.
func (c *Controller) SetValue(name, value string) error {
	return c.state.SetValue(name, value)
}

// Validate runs a validation pass, persists it into the field store and
// reports whether the form is valid.
func (c *Controller) Validate() bool {
	r := c.rules.Validate(c.state.Values())
	c.state.Apply(r)
	return r.Valid
}

// Submit starts an attempt. It is rejected without any state change while
// Pending or after success, and rejected with field errors populated when
// validation fails. Otherwise the form moves to Pending and the caller
// must hand the returned submission to the backend exactly once.
func (c *Controller) Submit() (Submission, error) {
	switch c.status {
	case Pending:
		return Submission{}, ErrInFlight
	case Succeeded:
		return Submission{}, ErrSettled
	}

	c.state.setSubmitError("")
	if !c.Validate() {
		return Submission{}, ErrInvalid
	}

	c.attempt++
	c.status = Pending
	return Submission{ID: c.attempt, Values: c.state.Values()}, nil
}

// Resolve settles the pending attempt id. A nil err moves to Succeeded;
// any error moves to Failed with the generic failure message, so a
// collaborator's error shape never reaches the view. Results for stale or
// unknown attempts are ignored and Resolve reports false.
func (c *Controller) Resolve(id uint64, err error) bool {
	if c.status != Pending || id != c.attempt {
		return false
	}
	if err != nil {
		c.status = Failed
		c.state.setSubmitError(c.failure)
		return true
	}
	c.status = Succeeded
	return true
}

// Reset clears the form and returns it to Idle. Visibility is kept.
func (c *Controller) Reset() {
	c.state.Reset()
	c.status = Idle
}

// ToggleVisibility flips the display mode of a masked field.
func (c *Controller) ToggleVisibility(field string) bool {
	return c.visibility.Toggle(field)
}

// Visible reports whether a masked field is shown in plain text.
func (c *Controller) Visible(field string) bool {
	return c.visibility.Shown(field)
}

// Masked reports whether a field was declared maskable.
func (c *Controller) Masked(field string) bool {
	return c.visibility.Maskable(field)
}
