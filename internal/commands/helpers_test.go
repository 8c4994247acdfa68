package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/diogo/copilotdesk/internal/api"
	"github.com/diogo/copilotdesk/internal/copilot"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/tui"
)

// fakeTUI records the inbox launch instead of taking over the terminal
type fakeTUI struct {
	called  bool
	session *inbox.Session
	panel   *copilot.Panel
	opts    tui.Options
}

func (f *fakeTUI) RunInbox(_ context.Context, session *inbox.Session, panel *copilot.Panel, opts tui.Options) error {
	f.called = true
	f.session = session
	f.panel = panel
	f.opts = opts
	return nil
}

// testEnv isolates a command run from the user's home, env and keyring
type testEnv struct {
	deps    *Dependencies
	ring    *keyring.ArrayKeyring
	tui     *fakeTUI
	copied  []string
	prompts int
}

func newTestEnv(t *testing.T, client api.GeminiClientInterface) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GLAMOUR_STYLE", "")

	env := &testEnv{
		ring: keyring.NewArrayKeyring(nil),
		tui:  &fakeTUI{},
	}
	env.deps = &Dependencies{
		Client: client,
		TUI:    env.tui,
		OpenKeyring: func() (keyring.Keyring, error) {
			return env.ring, nil
		},
		PromptAPIKey: func() (string, error) {
			env.prompts++
			return "", errors.New("no terminal")
		},
		CopyToClipboard: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
	}
	return env
}

// run executes args with stdin and returns stdout, stderr and the error
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd(e.deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var in io.Reader = strings.NewReader(stdin)
	cmd.SetIn(in)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
