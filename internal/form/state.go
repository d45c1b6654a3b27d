// Package form implements the credential form controller shared by the
// sign-in and registration screens: field state, validation, the
// submission lifecycle and per-field visibility.
package form

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name was not declared on the form.
var ErrUnknownField = errors.New("unknown field")

// Field is one named, user-editable text input.
type Field struct {
	Name  string
	Value string
	Error string
}

// Values is a snapshot of field values keyed by field name.
type Values map[string]string

// State holds the fields of one form instance in declaration order plus
// the form-level submit error. Field names are fixed at construction.
type State struct {
	order       []string
	fields      map[string]*Field
	submitError string
}

// NewState declares the fields of a form. Duplicate names are collapsed.
func NewState(names ...string) *State {
	s := &State{fields: make(map[string]*Field, len(names))}
	for _, n := range names {
		if _, ok := s.fields[n]; ok {
			continue
		}
		s.order = append(s.order, n)
		s.fields[n] = &Field{Name: n}
	}
	return s
}

// SetValue overwrites a field's value. A pending validation error on that
// field is cleared, as is the form-level submit error; nothing is
// revalidated.
func (s *State) SetValue(name, value string) error {
	f, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownField)
	}
	f.Value = value
	f.Error = ""
	s.submitError = ""
	return nil
}

// Reset clears every value and error.
func (s *State) Reset() {
	for _, f := range s.fields {
		f.Value = ""
		f.Error = ""
	}
	s.submitError = ""
}

// Field returns a copy of the named field.
func (s *State) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// Fields returns copies of all fields in declaration order.
func (s *State) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, *s.fields[n])
	}
	return out
}

// Names returns the declared field names in order.
func (s *State) Names() []string {
	return append([]string(nil), s.order...)
}

// Values returns a snapshot of the current values.
func (s *State) Values() Values {
	v := make(Values, len(s.order))
	for _, n := range s.order {
		v[n] = s.fields[n].Value
	}
	return v
}

// Errors returns the non-empty field errors keyed by field name.
func (s *State) Errors() map[string]string {
	errs := make(map[string]string)
	for _, n := range s.order {
		if e := s.fields[n].Error; e != "" {
			errs[n] = e
		}
	}
	return errs
}

// Apply persists a validation result: each field's error becomes the
// result's entry for it, or empty when the field passed.
func (s *State) Apply(r Result) {
	for _, n := range s.order {
		s.fields[n].Error = r.Errors[n]
	}
}

// SubmitError returns the form-level submission error, if any.
func (s *State) SubmitError() string { return s.submitError }

func (s *State) setSubmitError(msg string) { s.submitError = msg }
