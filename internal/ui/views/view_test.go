package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"qsearch/internal/domain"
	"qsearch/internal/search"
)

func catState() search.State {
	return search.State{
		Query:        "cat",
		Page:         1,
		PageSize:     10,
		Items:        []domain.Question{{ID: "1", Title: "Cats?", Type: "faq"}},
		TotalResults: 1,
		TotalPages:   1,
	}
}

func TestRenderResultRow(t *testing.T) {
	r := NewResultRenderer(NewStyles())

	out := r.RenderResults(catState(), 0, false)

	assert.Contains(t, out, " 1.")
	assert.Contains(t, out, "Cats?")
	assert.Contains(t, out, "[faq]")
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, ">")
}

func TestRenderResultCursor(t *testing.T) {
	r := NewResultRenderer(NewStyles())
	s := catState()
	s.Items = append(s.Items, domain.Question{ID: "2", Title: "Dogs?", Type: "faq"})

	lines := strings.Split(r.RenderResults(s, 1, true), "\n")

	assert.Len(t, lines, 2)
	assert.False(t, strings.HasPrefix(lines[0], ">"))
	assert.True(t, strings.HasPrefix(lines[1], "> "))
	assert.Contains(t, lines[1], " 2.")
}

func TestRenderResultStates(t *testing.T) {
	r := NewResultRenderer(NewStyles())

	tests := []struct {
		name  string
		state search.State
		want  string
	}{
		{"loading", search.State{Query: "cat", Page: 1, Loading: true, Items: catState().Items}, LoadingText},
		{"empty result", search.State{Query: "zzz", Page: 1}, NoResultsText},
		{"blank query", search.State{Query: "  ", Page: 1}, EmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, r.RenderResults(tt.state, 0, false), tt.want)
		})
	}
}

func TestPaginationSinglePage(t *testing.T) {
	r := NewPaginationRenderer(NewStyles())

	out := r.Render(catState(), 5)

	assert.Contains(t, out, PrevLabel)
	assert.Contains(t, out, NextLabel)
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "page 1 of 1")
}

func TestPaginationWindowHighlightsActivePage(t *testing.T) {
	r := NewPaginationRenderer(NewStyles())
	s := search.State{Query: "cat", Page: 6, TotalPages: 10, TotalResults: 100}

	out := r.Render(s, 5)

	for _, p := range []string{" 4 ", " 5 ", "[6]", " 7 ", " 8 "} {
		assert.Contains(t, out, p)
	}
	assert.NotContains(t, out, " 3 ")
	assert.NotContains(t, out, " 9 ")
}

func TestPaginationHiddenWithoutResults(t *testing.T) {
	r := NewPaginationRenderer(NewStyles())

	assert.Empty(t, r.Render(search.State{Query: "cat", Page: 1}, 5))
}

func TestRenderShowsError(t *testing.T) {
	s := catState()
	s.Err = &search.SearchFailedError{Key: s.Key(), Err: errors.New("connection refused")}

	out := NewRenderer().Render(ViewState{Width: 80, Height: 24, Search: s, WindowSize: 5})

	assert.Contains(t, out, "Search failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Cats?", "previous results stay on screen")
}

func TestRenderTitleShowsResultCount(t *testing.T) {
	s := catState()
	s.TotalResults = 42

	out := NewRenderer().Render(ViewState{Width: 80, Height: 24, Search: s, WindowSize: 5})

	assert.Contains(t, out, "qsearch")
	assert.Contains(t, out, "42 results")
}

func TestRenderDetail(t *testing.T) {
	q := domain.Question{ID: "17", Title: "How do I feed a cat?", Type: "howto"}

	out := RenderDetail(q, domain.PageKey{Query: "cat", Page: 2}, 3)

	assert.Contains(t, out, "How do I feed a cat?")
	assert.Contains(t, out, "17")
	assert.Contains(t, out, "howto")
	assert.Contains(t, out, `"cat", page 2, result 3`)
}
