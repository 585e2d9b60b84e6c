package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsearch/internal/domain"
	"qsearch/internal/search"
)

const (
	LoadingText   = "Loading..."
	NoResultsText = "No results found"
	EmptyText     = "Type to search questions"
)

// ResultRenderer handles rendering of the result list
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// RenderResults renders the result list, or the loading and empty states
func (r *ResultRenderer) RenderResults(s search.State, cursor int, showCursor bool) string {
	if s.Loading {
		return r.styles.Dim.Render(LoadingText)
	}
	if len(s.Items) == 0 {
		if domain.IsBlank(s.Query) {
			return r.styles.Dim.Render(EmptyText)
		}
		return r.styles.Dim.Render(NoResultsText)
	}

	lines := make([]string, 0, len(s.Items))
	for i, q := range s.Items {
		lines = append(lines, r.RenderQuestion(i+1, q, showCursor && i == cursor))
	}
	return strings.Join(lines, "\n")
}

// RenderQuestion renders one row: ordinal, title, type and id
func (r *ResultRenderer) RenderQuestion(ordinal int, q domain.Question, selected bool) string {
	ordinalStyle := r.styles.Ordinal
	titleStyle := r.styles.QuestionTitle
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(TypeColor(q.Type)))
	idStyle := r.styles.Dim
	if selected {
		ordinalStyle = ordinalStyle.Inherit(r.styles.Selected)
		titleStyle = titleStyle.Inherit(r.styles.Selected)
		typeStyle = typeStyle.Inherit(r.styles.Selected)
		idStyle = idStyle.Inherit(r.styles.Selected)
	}

	marker := "  "
	if selected {
		marker = "> "
	}

	parts := []string{
		ordinalStyle.Render(fmt.Sprintf("%2d.", ordinal)),
		titleStyle.Render(q.Title),
	}
	if q.Type != "" {
		parts = append(parts, typeStyle.Render("["+q.Type+"]"))
	}
	parts = append(parts, idStyle.Render("#"+string(q.ID)))

	return marker + strings.Join(parts, " ")
}

// RenderDetail renders a question for the pager
func RenderDetail(q domain.Question, key domain.PageKey, ordinal int) string {
	styles := NewStyles()
	label := styles.Ordinal

	var b strings.Builder
	b.WriteString(styles.Title.Render(q.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", label.Render("ID:   "), q.ID)
	if q.Type != "" {
		typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(TypeColor(q.Type)))
		fmt.Fprintf(&b, "%s %s\n", label.Render("Type: "), typeStyle.Render(q.Type))
	}
	fmt.Fprintf(&b, "%s %q, page %d, result %d\n", label.Render("Found:"), key.Query, key.Page, ordinal)
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("q to return to the results"))
	return b.String()
}
