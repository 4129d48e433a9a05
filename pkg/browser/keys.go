package browser

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the list-mode keys. Modal-mode keys are owned by the modal
// library (Tab/Enter/Esc).
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Filter  key.Binding
	Mark    key.Binding
	Marking key.Binding
	Preview key.Binding
	Order   key.Binding
	Config  key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Top:     key.NewBinding(key.WithKeys("g", "home")),
	Bottom:  key.NewBinding(key.WithKeys("G", "end")),
	Open:    key.NewBinding(key.WithKeys("enter")),
	Filter:  key.NewBinding(key.WithKeys("/")),
	Mark:    key.NewBinding(key.WithKeys(" ")),
	Marking: key.NewBinding(key.WithKeys("m")),
	Preview: key.NewBinding(key.WithKeys("p")),
	Order:   key.NewBinding(key.WithKeys("o")),
	Config:  key.NewBinding(key.WithKeys("s")),
	Reload:  key.NewBinding(key.WithKeys("r")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

const helpLine = "↑/↓ move • enter open • / filter • m mark • o order • s settings • q quit"
