package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Prompt         lipgloss.Style
	InputBox       lipgloss.Style
	InputBoxActive lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Main           lipgloss.Style
	Ordinal        lipgloss.Style
	QuestionTitle  lipgloss.Style
	QuestionMeta   lipgloss.Style
	Selected       lipgloss.Style
	PageActive     lipgloss.Style
	PageNumber     lipgloss.Style
	NavEnabled     lipgloss.Style
	NavDisabled    lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	Help           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputBoxActive: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Ordinal:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		QuestionTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		QuestionMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Selected:      lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		PageActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		PageNumber:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		NavEnabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		NavDisabled:   lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
	}
}

// TypeColor returns the color used for a question type badge
func TypeColor(questionType string) string {
	switch questionType {
	case "faq":
		return "78" // green
	case "howto", "how-to":
		return "33" // blue
	case "":
		return "241" // gray
	default:
		return "214" // yellow
	}
}
