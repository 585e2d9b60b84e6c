package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings for both focus modes
type keyMap struct {
	// Search bar
	Search     key.Binding
	ToResults  key.Binding
	ClearQuery key.Binding

	// Result list
	Up       key.Binding
	Down     key.Binding
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	GoToPage key.Binding
	Open     key.Binding
	Retry    key.Binding
	ToInput  key.Binding
	Help     key.Binding
	Quit     key.Binding

	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		ToResults: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "results"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "nth page in bar"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		ToInput: key.NewBinding(
			key.WithKeys("tab", "/", "esc"),
			key.WithHelp("/", "edit query"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// inputHelp is the help.KeyMap shown while the search bar has focus
type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Search, h.k.ToResults, h.k.ClearQuery, h.k.ForceQuit}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// resultsHelp is the help.KeyMap shown while the result list has focus
type resultsHelp struct{ k keyMap }

func (h resultsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Down, h.k.Prev, h.k.Next, h.k.Open, h.k.ToInput, h.k.Help, h.k.Quit}
}

func (h resultsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Open},
		{h.k.Prev, h.k.Next, h.k.First, h.k.Last, h.k.GoToPage},
		{h.k.Retry, h.k.ToInput, h.k.Help, h.k.Quit},
	}
}
