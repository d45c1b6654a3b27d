// Package screen binds the form controller to the two credential screens.
package screen

import (
	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/form"
	"github.com/zarlcorp/codementor/internal/messages"
)

// Routes served by the navigation shell.
const (
	RouteHome     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"
)

// Field names.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// FieldSpec describes how one field is presented.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	Masked      bool
}

// Success is the side effect a screen performs after a successful attempt.
// Exactly one of Navigate or Notice is set.
type Success struct {
	Navigate string
	Notice   string
}

// Spec is everything a credential screen needs besides the backend.
type Spec struct {
	Route        string
	Action       auth.Action
	Title        string
	Subtitle     string
	Fields       []FieldSpec
	Rules        form.RuleSet
	SubmitLabel  string
	PendingLabel string
	Failure      string
	Success      Success

	// Alternate is the route of the sibling screen ("sign up" / "sign in").
	Alternate string
}

// SignIn builds the sign-in screen.
func SignIn(c *messages.Catalog) Spec {
	email := c.T(messages.LabelEmail)
	password := c.T(messages.LabelPassword)

	return Spec{
		Route:    RouteLogin,
		Action:   auth.ActionSignIn,
		Title:    c.T(messages.SignInTitle),
		Subtitle: c.T(messages.SignInSubtitle),
		Fields: []FieldSpec{
			{Name: FieldEmail, Label: email, Placeholder: "you@example.com"},
			{Name: FieldPassword, Label: password, Placeholder: "••••••••", Masked: true},
		},
		Rules: form.NewRuleSet(
			form.Required(FieldEmail, c.Required(email)),
			form.Required(FieldPassword, c.Required(password)),
		),
		SubmitLabel:  c.T(messages.SignInSubmit),
		PendingLabel: c.T(messages.SignInPending),
		Failure:      c.T(messages.SignInFailed),
		Success:      Success{Navigate: RouteHome},
		Alternate:    RouteRegister,
	}
}

// Registration builds the registration screen.
func Registration(c *messages.Catalog) Spec {
	username := c.T(messages.LabelUsername)
	email := c.T(messages.LabelEmail)
	password := c.T(messages.LabelPassword)
	confirm := c.T(messages.LabelConfirmPassword)

	return Spec{
		Route:    RouteRegister,
		Action:   auth.ActionRegister,
		Title:    c.T(messages.RegisterTitle),
		Subtitle: c.T(messages.RegisterSubtitle),
		Fields: []FieldSpec{
			{Name: FieldUsername, Label: username, Placeholder: "johndoe"},
			{Name: FieldEmail, Label: email, Placeholder: "you@example.com"},
			{Name: FieldPassword, Label: password, Placeholder: "••••••••", Masked: true},
			{Name: FieldConfirmPassword, Label: confirm, Placeholder: "••••••••", Masked: true},
		},
		Rules: form.NewRuleSet(
			form.Required(FieldUsername, c.Required(username)),
			form.Required(FieldEmail, c.Required(email)),
			form.Required(FieldPassword, c.Required(password)),
			form.Required(FieldConfirmPassword, c.Required(confirm)),
			form.Matches(FieldConfirmPassword, FieldPassword, c.T(messages.PasswordsMismatch)),
		),
		SubmitLabel:  c.T(messages.RegisterSubmit),
		PendingLabel: c.T(messages.RegisterPending),
		Failure:      c.T(messages.RegisterFailed),
		Success:      Success{Notice: c.T(messages.RegisterSuccess)},
		Alternate:    RouteLogin,
	}
}

// NewController creates the per-mount form state for this screen.
func (s Spec) NewController() *form.Controller {
	names := make([]string, 0, len(s.Fields))
	var masked []string
	for _, f := range s.Fields {
		names = append(names, f.Name)
		if f.Masked {
			masked = append(masked, f.Name)
		}
	}
	return form.NewController(names, s.Rules, s.Failure, form.WithMasked(masked...))
}

// Credentials maps a submission snapshot to backend credentials.
func (s Spec) Credentials(v form.Values) auth.Credentials {
	return auth.Credentials{
		Action:   s.Action,
		Username: v[FieldUsername],
		Email:    v[FieldEmail],
		Password: v[FieldPassword],
	}
}

// Field returns the presentation spec for a field name.
func (s Spec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Navigates reports whether success leaves the screen.
func (s Spec) Navigates() bool { return s.Success.Navigate != "" }
