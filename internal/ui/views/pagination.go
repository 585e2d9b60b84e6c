package views

import (
	"fmt"
	"strings"

	"qsearch/internal/search"
)

const (
	PrevLabel = "‹ Prev"
	NextLabel = "Next ›"
)

// PaginationRenderer renders the Prev / page window / Next bar
type PaginationRenderer struct {
	styles *Styles
}

// NewPaginationRenderer creates a new pagination renderer
func NewPaginationRenderer(styles *Styles) *PaginationRenderer {
	return &PaginationRenderer{styles: styles}
}

// Render returns the pagination bar, or "" when there is nothing to page
func (r *PaginationRenderer) Render(s search.State, windowSize int) string {
	if s.TotalPages == 0 && s.Page <= 1 {
		return ""
	}

	parts := []string{r.nav(PrevLabel, s.HasPrev())}
	for p := range s.PageWindow(windowSize) {
		if p == s.Page {
			parts = append(parts, r.styles.PageActive.Render(fmt.Sprintf("[%d]", p)))
		} else {
			parts = append(parts, r.styles.PageNumber.Render(fmt.Sprintf(" %d ", p)))
		}
	}
	parts = append(parts, r.nav(NextLabel, s.HasNext()))

	bar := strings.Join(parts, " ")
	if s.TotalPages > 0 {
		bar += r.styles.Dim.Render(fmt.Sprintf("   page %d of %d", s.Page, s.TotalPages))
	}
	return bar
}

func (r *PaginationRenderer) nav(label string, enabled bool) string {
	if enabled {
		return r.styles.NavEnabled.Render(label)
	}
	return r.styles.NavDisabled.Render(label)
}
