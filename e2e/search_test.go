//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWith(t *testing.T, backend *questionBackend, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateWorkspace(backend.URL())
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp(args...), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the title")
	return tf
}

func TestTypingShowsResults(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("cat"))
	require.NoError(t, tf.WaitForE("cat question 1", 3*time.Second))
	assert.True(t, tf.SeePlain("page 1 of 1"))

	for _, r := range backend.Requests() {
		assert.Equal(t, "cat", r.Query, "only the settled query reaches the service")
	}
}

func TestInitialQueryArgument(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	tf := startWith(t, backend, "dog")

	require.NoError(t, tf.WaitForE("dog question 1", 3*time.Second))
}

func TestPagingUsesCache(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	backend.SetTotal("cat", 25)
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("cat"))
	require.NoError(t, tf.WaitForE("page 1 of 3", 3*time.Second))

	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys(KeyRight))
	require.NoError(t, tf.WaitForE("cat question 11", 3*time.Second))
	require.NoError(t, tf.WaitForE("page 2 of 3", 3*time.Second))

	tf.Reset()
	require.NoError(t, tf.SendKeys(KeyLeft))
	require.NoError(t, tf.WaitForE("page 1 of 3", 3*time.Second))

	pageOne := 0
	for _, r := range backend.Requests() {
		if r.Query == "cat" && r.Page == 1 {
			pageOne++
		}
	}
	assert.Equal(t, 1, pageOne, "returning to page 1 is served from the cache")
}

func TestNoResults(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	backend.SetTotal("zzz", 0)
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("zzz"))
	require.NoError(t, tf.WaitForE("No results found", 3*time.Second))
}

func TestServiceFailureIsShown(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	backend.SetFailing("broken")
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("broken"))
	require.NoError(t, tf.WaitForE("Search failed", 3*time.Second))
	assert.True(t, tf.SeePlain("index offline"))
}

func TestSlowStaleResponseIsNotShown(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	backend.SetDelay("ca", time.Second)
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("ca"))
	// Let the debounce fire so "ca" is in flight
	time.Sleep(400 * time.Millisecond)
	require.NoError(t, tf.Type("t"))
	require.NoError(t, tf.WaitForE("cat question 1", 3*time.Second))

	// Wait for the slow response to arrive and be dropped
	time.Sleep(1500 * time.Millisecond)
	assert.NotContains(t, tf.SnapshotPlain(), "ca question 1")
	assert.True(t, strings.Contains(tf.SnapshotPlain(), "cat question 1"))
}

func TestHelpOpensInPager(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	tf := startWith(t, backend)

	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys(KeyHelp))
	require.NoError(t, tf.WaitForE("qsearch Help", 3*time.Second))

	tf.Reset()
	require.NoError(t, tf.SendKeys(KeyQuit))
	require.NoError(t, tf.WaitForE("qsearch", 3*time.Second))
}

func TestQuestionDetailOpensInPager(t *testing.T) {
	t.Parallel()
	backend := newQuestionBackend(t)
	tf := startWith(t, backend)

	require.NoError(t, tf.Type("cat"))
	require.NoError(t, tf.WaitForE("cat question 1", 3*time.Second))

	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.NoError(t, tf.WaitForE(`"cat", page 1, result 1`, 3*time.Second))

	require.NoError(t, tf.SendKeys(KeyQuit))
}
