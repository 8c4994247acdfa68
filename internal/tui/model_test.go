package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/copilotdesk/internal/api"
	"github.com/diogo/copilotdesk/internal/copilot"
	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/models"
	"github.com/diogo/copilotdesk/internal/render"
)

func newTestModel(t *testing.T, client api.GeminiClientInterface, initial string) Model {
	t.Helper()

	dir, err := inbox.Default()
	if err != nil {
		t.Fatalf("inbox.Default() error: %v", err)
	}
	panel := copilot.NewPanel(copilot.NewService(client))

	m := NewModel(context.Background(), inbox.NewSession(dir), panel, Options{
		Theme:               "tokyonight",
		InitialConversation: initial,
	})
	return send(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
}

// send applies msg and returns the updated model
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press applies a key and returns the model and command
func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// collect runs cmd, expanding batches, and returns every message produced
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func focusCopilot(t *testing.T, m Model) Model {
	t.Helper()
	for m.focus != paneCopilot {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

func TestNewModel_InitialConversation(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "1")

	if !m.chat.open || m.chat.conv.Customer.Name != "Luis" {
		t.Fatalf("expected conversation 1 open, got %+v", m.chat.conv)
	}
	if m.focus != paneSidebar {
		t.Errorf("focus = %v, want sidebar", m.focus)
	}

	view := m.View()
	for _, want := range []string{"Your inbox", "Luis", "AI Copilot", "Hi, I'm Fin AI Copilot"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_BeforeResize(t *testing.T) {
	dir, _ := inbox.Default()
	m := NewModel(context.Background(), inbox.NewSession(dir), copilot.NewPanel(copilot.NewService(nil)), Options{})

	if !strings.Contains(m.View(), "Initializing") {
		t.Error("expected initializing view before the first resize")
	}
}

func TestCloseConversation(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "2")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlW})

	if m.chat.open {
		t.Fatal("conversation should be closed")
	}
	if !strings.Contains(m.View(), "No conversation selected") {
		t.Error("expected empty state")
	}
}

func TestSidebar_SelectOpensConversation(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "")

	if m.chat.open {
		t.Fatal("no conversation should be open")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	want, ok := m.sidebar.selected()
	if !ok {
		t.Fatal("no selection")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.chat.open || m.chat.conv.ID != want.ID {
		t.Errorf("opened %q, want %q", m.chat.conv.ID, want.ID)
	}
	if m.focus != paneChat {
		t.Errorf("focus = %v, want chat", m.focus)
	}
}

func TestSidebar_WaitingLongestFirst(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "")

	items := m.sidebar.list.Items()
	last := items[len(items)-1].(conversationItem)
	if last.conv.Customer.Name != "Ivan" {
		t.Errorf("most recent conversation should be last, got %s", last.conv.Customer.Name)
	}
	if m.sidebar.openCount() != 5 {
		t.Errorf("openCount() = %d, want 5", m.sidebar.openCount())
	}
}

func TestChat_SendReply(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "1")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != paneChat {
		t.Fatalf("focus = %v, want chat", m.focus)
	}

	before := len(m.chat.thread.Messages())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.chat.thread.Messages()) != before {
		t.Error("empty composer must not send")
	}

	m = typeText(t, m, "Looking into it")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	msgs := m.chat.thread.Messages()
	if len(msgs) != before+1 {
		t.Fatalf("thread length = %d, want %d", len(msgs), before+1)
	}
	if got := msgs[len(msgs)-1]; got.Text != "Looking into it" || got.Status != models.DeliverySent {
		t.Errorf("unexpected reply %+v", got)
	}
	if m.chat.composer.Value() != "" {
		t.Error("composer should be cleared after sending")
	}
}

func TestCopilot_EmptyPromptIsNoop(t *testing.T) {
	mock := &api.MockGeminiClient{APIKeySet: true}
	m := focusCopilot(t, newTestModel(t, mock, "1"))

	m = typeText(t, m, "   ")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("empty prompt should not start a query")
	}
	if m.copilot.panel.Transcript().Len() != 0 {
		t.Error("empty prompt should not create turns")
	}
}

func TestCopilot_MissingCredentialNotice(t *testing.T) {
	mock := &api.MockGeminiClient{}
	m := focusCopilot(t, newTestModel(t, mock, "1"))

	m = typeText(t, m, "summarize this")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("missing credential should not start a query")
	}
	if m.copilot.panel.Transcript().Len() != 0 {
		t.Error("missing credential should not create turns")
	}
	if mock.Calls() != 0 {
		t.Error("missing credential should not reach the client")
	}
	if !strings.Contains(m.View(), "Please add your Gemini API key") {
		t.Error("expected blocking notice in view")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.copilot.notice != "" {
		t.Error("esc should dismiss the notice")
	}
}

func TestCopilot_AskFlow(t *testing.T) {
	mock := &api.MockGeminiClient{
		APIKeySet:          true,
		GenerateContentVal: &models.ModelOutput{Candidates: []models.Candidate{{Text: "Hello"}}},
	}
	m := focusCopilot(t, newTestModel(t, mock, "1"))

	m = typeText(t, m, "hi")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a query command")
	}
	if !m.copilot.panel.Busy() {
		t.Error("panel should be busy while the query runs")
	}
	if m.copilot.input.Value() != "" {
		t.Error("input should be cleared on submit")
	}

	// A second submit while busy is ignored
	m = typeText(t, m, "again")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.copilot.panel.Transcript().Len() != 1 {
		t.Fatalf("transcript length = %d, want 1", m.copilot.panel.Transcript().Len())
	}

	var result *copilotResultMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(copilotResultMsg); ok {
			result = &r
		}
	}
	if result == nil {
		t.Fatal("query command produced no result")
	}
	if mock.LastPrompt != "hi" {
		t.Errorf("prompt sent = %q", mock.LastPrompt)
	}

	m = send(t, m, *result)

	turns := m.copilot.panel.Transcript().Turns()
	if len(turns) != 2 || turns[0].Origin != models.OriginUser || turns[1].Text != "Hello" {
		t.Fatalf("unexpected transcript %+v", turns)
	}
	if m.copilot.panel.Busy() {
		t.Error("panel should be idle after the reply")
	}
}

func TestCopilot_FailureShownAsReply(t *testing.T) {
	m := focusCopilot(t, newTestModel(t, &api.MockGeminiClient{APIKeySet: true}, "1"))

	m = typeText(t, m, "hi")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, copilotResultMsg{result: models.Failure(apierrors.CategoryRateLimited)})

	last, _ := m.copilot.panel.Transcript().Last()
	if last.Origin != models.OriginAssistant || last.Text != "Rate limit exceeded. Please try again later." {
		t.Errorf("unexpected last turn %+v", last)
	}
}

func TestAddToComposer(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{APIKeySet: true}, "1")
	m.copilot.panel.Begin("draft a reply")
	m.copilot.complete(models.Success("Thanks for waiting!"))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})

	if got := m.chat.composer.Value(); got != "Thanks for waiting!" {
		t.Errorf("composer = %q", got)
	}
	if m.bridge.Pending() {
		t.Error("handoff should be consumed")
	}
	if m.focus != paneChat {
		t.Errorf("focus = %v, want chat", m.focus)
	}

	m.chat.composer.Reset()
	m.openConversation("2")
	if m.chat.composer.Value() != "" {
		t.Error("a consumed handoff must not be applied twice")
	}
}

func TestAddToComposer_DeferredUntilOpen(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{APIKeySet: true}, "")
	m.copilot.panel.Begin("q")
	m.copilot.complete(models.Success("Use this"))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if !m.bridge.Pending() {
		t.Fatal("handoff should wait for a conversation")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.chat.composer.Value() != "Use this" {
		t.Errorf("composer = %q", m.chat.composer.Value())
	}
	if m.bridge.Pending() {
		t.Error("handoff should be consumed on open")
	}
}

func TestCopyReply(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { writeClipboard = orig }()

	m := newTestModel(t, &api.MockGeminiClient{APIKeySet: true}, "1")

	if _, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY}); cmd != nil {
		t.Error("nothing to copy yet")
	}

	m.copilot.panel.Begin("q")
	m.copilot.complete(models.Success("copy me"))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m = send(t, m, cmd())

	if copied != "copy me" {
		t.Errorf("copied %q", copied)
	}
	if m.feedback == "" {
		t.Error("expected feedback after copy")
	}
}

func TestToggleDarkMode(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "1")
	if colorBackground != render.LightTheme.Background {
		t.Fatalf("expected light palette first")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.darkMode || colorBackground != render.TokyoNightTheme.Background {
		t.Error("ctrl+d should switch to the dark palette")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.darkMode || colorBackground != render.LightTheme.Background {
		t.Error("ctrl+d should switch back to light")
	}
}

func TestSwitchTab(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{}, "1")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.copilot.tab != tabDetails {
		t.Fatal("ctrl+t should show details")
	}
	view := m.View()
	for _, want := range []string{"Brian Bryne", "Unassigned", "luis@example.com", "LINKS"} {
		if !strings.Contains(view, want) {
			t.Errorf("details missing %q", want)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.copilot.tab != tabCopilot {
		t.Error("ctrl+t should switch back")
	}
}

func TestAnimationTick(t *testing.T) {
	m := newTestModel(t, &api.MockGeminiClient{APIKeySet: true}, "1")

	m = send(t, m, animationTickMsg{})
	if m.copilot.animationFrame != 0 {
		t.Error("idle panel should not animate")
	}

	m.copilot.panel.Begin("q")
	m = send(t, m, animationTickMsg{})
	if m.copilot.animationFrame != 1 {
		t.Errorf("animationFrame = %d, want 1", m.copilot.animationFrame)
	}
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		total                int
		side, chat, copilot int
	}{
		{200, 40, 110, 50},
		{100, 28, 40, 32},
		{60, 28, 20, 32},
	}
	for _, tt := range tests {
		s, c, p := columnWidths(tt.total)
		if s != tt.side || c != tt.chat || p != tt.copilot {
			t.Errorf("columnWidths(%d) = %d, %d, %d", tt.total, s, c, p)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo", 2, "h…"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
