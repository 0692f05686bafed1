package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares every binding the table shell responds to.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	PrevColumn  key.Binding
	NextColumn  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Search      key.Binding
	Filter      key.Binding
	Sort        key.Binding
	Select      key.Binding
	SelectAll   key.Binding
	ClearSel    key.Binding
	Widen       key.Binding
	Narrow      key.Binding
	Activate    key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	PrevColumn:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	NextColumn:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	ScrollLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←", "scroll left")),
	ScrollRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→", "scroll right")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter column")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
	Select:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
	SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	ClearSel:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "clear selection")),
	Widen:       key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "widen column")),
	Narrow:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow column")),
	Activate:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate row")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}
