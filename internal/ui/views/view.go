package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsearch/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Search        search.State
	Input         string // rendered text input
	InputFocused  bool
	Cursor        int
	WindowSize    int
	Spinner       string
	StatusMessage string
	Help          string // rendered key help
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	resultRender *ResultRenderer
	pageRender   *PaginationRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		resultRender: NewResultRenderer(styles),
		pageRender:   NewPaginationRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	box := r.styles.InputBox
	if state.InputFocused {
		box = r.styles.InputBoxActive
	}
	content.WriteString(box.Render(state.Input))
	content.WriteString("\n\n")

	content.WriteString(r.resultRender.RenderResults(state.Search, state.Cursor, !state.InputFocused))
	content.WriteString("\n")

	if pages := r.pageRender.Render(state.Search, state.WindowSize); pages != "" {
		content.WriteString("\n")
		content.WriteString(pages)
		content.WriteString("\n")
	}

	if status := r.renderStatus(state); status != "" {
		content.WriteString(r.styles.Status.Render(status))
		content.WriteString("\n")
	}

	if state.Help != "" {
		// Push help to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if padding := availableLines - currentLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("qsearch")

	right := ""
	switch {
	case state.Search.Loading:
		right = r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Searching"))
	case state.Search.TotalResults > 0:
		right = r.styles.Dim.Render(fmt.Sprintf("%d results", state.Search.TotalResults))
	}
	if right == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	// Account for main container padding
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderStatus(state ViewState) string {
	if err := state.Search.Err; err != nil {
		return r.styles.StatusError.Render(fmt.Sprintf("Search failed: %v", err)) +
			r.styles.Dim.Render("  (r to retry)")
	}
	if state.StatusMessage != "" {
		return state.StatusMessage
	}
	return ""
}
