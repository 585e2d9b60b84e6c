//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitExit(t *testing.T, tf *TUITestFramework, timeout time.Duration) bool {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()
	select {
	case exitErr := <-done:
		if exitErr != nil {
			t.Logf("Process exited with: %v", exitErr)
		}
		tf.cmd = nil
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestApplicationExitWithQ(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	backend := newQuestionBackend(t)
	_, err := tf.CreateWorkspace(backend.URL())
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the title")

	require.NoError(t, tf.Quit())
	require.True(t, waitExit(t, tf, 2*time.Second), "q in the result list should quit")
}

func TestApplicationExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	backend := newQuestionBackend(t)
	_, err := tf.CreateWorkspace(backend.URL())
	require.NoError(t, err)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	// q is just a character while the search bar has focus
	require.NoError(t, tf.Type("q"))
	require.NoError(t, tf.SendCtrlC())
	require.True(t, waitExit(t, tf, 2*time.Second), "ctrl+c should quit from the search bar")
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.True(t, strings.Contains(output, "Usage"), "Help should contain usage")
	require.True(t, strings.Contains(output, "--config"), "Help should document --config")
	require.True(t, strings.Contains(output, "query"), "Help should list the query command")
}
