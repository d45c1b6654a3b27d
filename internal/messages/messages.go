// Package messages loads the user-facing string catalog.
package messages

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var catalogFS embed.FS

// Message ids.
const (
	FieldRequired     = "field_required"
	PasswordsMismatch = "passwords_mismatch"

	LabelUsername        = "label_username"
	LabelEmail           = "label_email"
	LabelPassword        = "label_password"
	LabelConfirmPassword = "label_confirm_password"

	SignInTitle    = "signin_title"
	SignInSubtitle = "signin_subtitle"
	SignInSubmit   = "signin_submit"
	SignInPending  = "signin_pending"
	SignInFailed   = "signin_failed"

	RegisterTitle    = "register_title"
	RegisterSubtitle = "register_subtitle"
	RegisterSubmit   = "register_submit"
	RegisterPending  = "register_pending"
	RegisterFailed   = "register_failed"
	RegisterSuccess  = "register_success"
)

// Catalog resolves message ids for one language.
type Catalog struct {
	lang language.Tag
	loc  *i18n.Localizer
}

// New loads the embedded catalog and returns a localizer for lang. An
// empty or unparsable lang falls back to English.
func New(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := catalogFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(catalogFS, f.Name()); err != nil {
			return nil, fmt.Errorf("load %s: %w", f.Name(), err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	return &Catalog{
		lang: tag,
		loc:  i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// Must is New for callers that cannot recover from a broken embedded catalog.
func Must(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic("messages: " + err.Error())
	}
	return c
}

// Language returns the resolved language tag.
func (c *Catalog) Language() language.Tag { return c.lang }

// T returns the message for id. Unknown ids render as the id itself so a
// missing translation shows up in the UI instead of an empty string.
func (c *Catalog) T(id string) string {
	s, err := c.loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return s
}

// Required returns the inline error for an empty required field.
func (c *Catalog) Required(field string) string {
	s, err := c.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    FieldRequired,
		TemplateData: map[string]string{"Field": field},
	})
	if err != nil {
		return field + " is required"
	}
	return s
}
