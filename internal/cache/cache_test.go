package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsearch/internal/domain"
)

func page(title string) domain.ResultPage {
	return domain.ResultPage{
		Items:        []domain.Question{{ID: "1", Title: title, Type: "faq"}},
		TotalResults: 1,
		TotalPages:   1,
	}
}

func TestUnboundedKeepsEverything(t *testing.T) {
	c := New(0)
	for i := 1; i <= 500; i++ {
		c.Put(domain.PageKey{Query: "cat", Page: i}, page("Cats?"))
	}
	assert.Equal(t, 500, c.Len())

	got, ok := c.Get(domain.PageKey{Query: "cat", Page: 1})
	require.True(t, ok)
	assert.Equal(t, page("Cats?"), got)
}

func TestKeyIncludesQueryAndPage(t *testing.T) {
	c := NewUnbounded()
	c.Put(domain.PageKey{Query: "cat", Page: 1}, page("one"))
	c.Put(domain.PageKey{Query: "cat", Page: 2}, page("two"))
	c.Put(domain.PageKey{Query: "cats", Page: 1}, page("three"))

	got, ok := c.Get(domain.PageKey{Query: "cat", Page: 2})
	require.True(t, ok)
	assert.Equal(t, "two", got.Items[0].Title)

	_, ok = c.Get(domain.PageKey{Query: "dog", Page: 1})
	assert.False(t, ok)

	// Same key replaces, never duplicates
	c.Put(domain.PageKey{Query: "cat", Page: 1}, page("uno"))
	assert.Equal(t, 3, c.Len())
}

func TestQueryIsNotNormalized(t *testing.T) {
	c := NewUnbounded()
	c.Put(domain.PageKey{Query: "cat", Page: 1}, page("x"))
	_, ok := c.Get(domain.PageKey{Query: "cat ", Page: 1})
	assert.False(t, ok)
}

func TestStoredPagesAreIsolatedFromCallers(t *testing.T) {
	for name, c := range map[string]ResultCache{"map": New(0), "lru": New(4)} {
		t.Run(name, func(t *testing.T) {
			p := page("original")
			key := domain.PageKey{Query: "cat", Page: 1}
			c.Put(key, p)
			p.Items[0].Title = "mutated after put"

			got, ok := c.Get(key)
			require.True(t, ok)
			got.Items[0].Title = "mutated after get"

			again, _ := c.Get(key)
			assert.Equal(t, "original", again.Items[0].Title)
		})
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	a := domain.PageKey{Query: "a", Page: 1}
	b := domain.PageKey{Query: "b", Page: 1}
	d := domain.PageKey{Query: "d", Page: 1}

	c.Put(a, page("a"))
	c.Put(b, page("b"))
	_, _ = c.Get(a) // a is now most recent
	c.Put(d, page("d"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(b)
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get(a)
	assert.True(t, ok)
	_, ok = c.Get(d)
	assert.True(t, ok)
}
