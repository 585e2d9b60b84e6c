//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "qsearch_e2e"

const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyTab   = "\t"
	KeyRight = "\x1b[C"
	KeyLeft  = "\x1b[D"
	KeyHelp  = "?"
	KeyQuit  = "q"
)

// Escape sequences stripped before matching screen text
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b[=>])|` +
		`\r`,
)

// TUITestFramework runs qsearch in a pseudo-terminal and records what it draws
type TUITestFramework struct {
	t          *testing.T
	pty        *os.File
	cmd        *exec.Cmd
	workspace  string
	configPath string

	mu  sync.Mutex
	out bytes.Buffer
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// CreateWorkspace writes a config pointing the http backend at backendURL
func (tf *TUITestFramework) CreateWorkspace(backendURL string) (string, error) {
	dir, err := os.MkdirTemp("", "qsearch-e2e-")
	if err != nil {
		return "", err
	}
	tf.workspace = dir

	config := fmt.Sprintf(`version = 1

[backend]
kind = "http"
address = %q
timeout_ms = 5000

[search]
page_size = 10
debounce_ms = 150
cache_size = 0
window_size = 5

[log]
file = %q
`, backendURL, filepath.Join(dir, "qsearch.log"))

	tf.configPath = filepath.Join(dir, "config.toml")
	return dir, os.WriteFile(tf.configPath, []byte(config), 0o644)
}

// StartApp launches qsearch with the workspace config followed by args
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, append([]string{"--config", tf.configPath}, args...)...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("starting qsearch in a pty: %w", err)
	}
	tf.pty = f

	go tf.capture(f)
	return nil
}

func (tf *TUITestFramework) capture(f *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.out.Write(buf[:n])
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Type sends text one rune at a time with a short gap, like a user typing
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) SendCtrlC() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlC)
}

// Quit focuses the result list and presses q
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	if err := tf.SendKeys(KeyTab); err != nil {
		return err
	}
	return tf.SendKeys(KeyQuit)
}

// Ready waits for the title line of the first frame
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.waitPlain("qsearch", 5*time.Second)
}

func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.waitPlain(text, 3*time.Second)
}

// WaitForE is waitPlain with the tail of the screen in the error
func (tf *TUITestFramework) WaitForE(text string, timeout time.Duration) error {
	tf.t.Helper()
	if tf.waitPlain(text, timeout) {
		return nil
	}
	tail := tf.SnapshotPlain()
	if len(tail) > 4096 {
		tail = tail[len(tail)-4096:]
	}
	return fmt.Errorf("timed out waiting for %q\n--- tail ---\n%s", text, tail)
}

func (tf *TUITestFramework) waitPlain(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(tf.SnapshotPlain(), text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Reset forgets everything drawn so far
func (tf *TUITestFramework) Reset() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.out.Reset()
}

// SnapshotPlain returns everything drawn since the last Reset without escapes
func (tf *TUITestFramework) SnapshotPlain() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return ansiRe.ReplaceAllString(tf.out.String(), "")
}

// Cleanup closes the pty, which hangs up the app, and removes the workspace
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.workspace != "" {
		_ = os.RemoveAll(tf.workspace)
		tf.workspace = ""
	}
}
