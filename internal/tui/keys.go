package tui

import "github.com/charmbracelet/bubbles/key"

var (
	keyReveal    = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "show/hide"))
	keySwitch    = key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "switch"))
	keySuggest   = key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "suggest password"))
	keyLogin     = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in"))
	keyRegister  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign up"))
	keyPrevField = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev"))
	keyNextField = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next"))
)
