package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/copilotdesk/internal/copilot"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/render"
)

// pane identifies the focused column
type pane int

const (
	paneSidebar pane = iota
	paneChat
	paneCopilot
)

// clipboardMsg reports the outcome of a copy
type clipboardMsg struct {
	err error
}

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// Options configures the inbox UI
type Options struct {
	// Theme names the dark palette used when dark mode is on
	Theme    string
	DarkMode bool
	// Timeout bounds each copilot query; zero means none
	Timeout time.Duration
	// InitialConversation is opened on start; empty opens nothing
	InitialConversation string
	Logger              zerolog.Logger
	// Now is the clock for relative times; nil uses time.Now
	Now func() time.Time
}

// Model represents the TUI state
type Model struct {
	ctx     context.Context
	session *inbox.Session
	bridge  *copilot.Bridge
	keys    KeyMap
	logger  zerolog.Logger

	sidebar sidebarModel
	chat    chatModel
	copilot copilotModel

	focus    pane
	darkMode bool
	theme    string
	feedback string
	err      error

	ready  bool
	width  int
	height int
}

// NewModel creates the inbox TUI model
func NewModel(ctx context.Context, session *inbox.Session, panel *copilot.Panel, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	UpdateTheme(render.ThemeFor(opts.Theme, opts.DarkMode))

	keys := DefaultKeyMap()
	m := Model{
		ctx:      ctx,
		session:  session,
		bridge:   &copilot.Bridge{},
		keys:     keys,
		logger:   opts.Logger,
		sidebar:  newSidebar(session.Directory().Conversations(), now),
		chat:     newChat(keys),
		copilot:  newCopilot(panel, opts.Timeout),
		darkMode: opts.DarkMode,
		theme:    opts.Theme,
	}

	if id := opts.InitialConversation; id != "" {
		m.openConversation(id)
	}
	m.focus = paneSidebar
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case copilotResultMsg:
		m.copilot.complete(msg.result)
		if !msg.result.IsSuccess() {
			m.logger.Debug().Str("category", msg.result.Category().String()).Msg("copilot reply is a failure")
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.err = msg.err
			m.feedback = ""
		} else {
			m.err = nil
			m.feedback = "Copied reply to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	switch m.focus {
	case paneSidebar:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Select) && !m.sidebar.filtering() {
			if conv, ok := m.sidebar.selected(); ok {
				m.openConversation(conv.ID)
				cmds = append(cmds, m.setFocus(paneChat))
			}
			break
		}
		m.sidebar, cmd = m.sidebar.update(msg)
		cmds = append(cmds, cmd)

	case paneChat:
		m.chat, cmd = m.chat.update(msg, m.keys)
		cmds = append(cmds, cmd)

	case paneCopilot:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Send) && m.copilot.tab == tabCopilot {
			cmds = append(cmds, m.copilot.submit(m.ctx))
			break
		}
		m.copilot, cmd = m.copilot.update(msg)
		cmds = append(cmds, cmd)
	}

	// Ticks are addressed to the copilot regardless of focus
	if m.focus != paneCopilot {
		switch msg.(type) {
		case animationTickMsg, spinner.TickMsg:
			m.copilot, cmd = m.copilot.update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey processes keys that work in every pane
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.focus == paneSidebar && m.sidebar.filtering() {
		if key.Matches(msg, m.keys.Quit) {
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		return true, m, m.setFocus((m.focus + 1) % 3)

	case key.Matches(msg, m.keys.ToggleDark):
		m.darkMode = !m.darkMode
		UpdateTheme(render.ThemeFor(m.theme, m.darkMode))
		m.chat.restyle()
		m.copilot.restyle()
		return true, m, nil

	case key.Matches(msg, m.keys.Close):
		m.chat.close()
		if m.focus == paneChat {
			return true, m, m.setFocus(paneSidebar)
		}
		return true, m, nil

	case key.Matches(msg, m.keys.SwitchTab):
		m.copilot.toggleTab()
		return true, m, nil

	case key.Matches(msg, m.keys.AddToReply):
		text, ok := m.copilot.lastReply()
		if !ok {
			return true, m, nil
		}
		m.bridge.Handoff(text)
		if m.chat.absorb(m.bridge) {
			m.feedback = "Added reply to composer"
			return true, m, m.setFocus(paneChat)
		}
		m.feedback = "Open a conversation to use the reply"
		return true, m, nil

	case key.Matches(msg, m.keys.CopyReply):
		text, ok := m.copilot.lastReply()
		if !ok {
			return true, m, nil
		}
		return true, m, func() tea.Msg {
			return clipboardMsg{err: writeClipboard(text)}
		}
	}

	return false, m, nil
}

// openConversation shows id in the chat pane and hands over any pending reply
func (m *Model) openConversation(id string) {
	conv, ok := m.session.Directory().Conversation(id)
	if !ok {
		return
	}
	m.sidebar.selectID(id)
	m.chat.openConversation(conv, m.session.Thread(id))
	if m.chat.absorb(m.bridge) {
		m.feedback = "Added reply to composer"
	}
}

// setFocus moves focus to p, blurring the other inputs
func (m *Model) setFocus(p pane) tea.Cmd {
	m.focus = p
	m.chat.blur()
	m.copilot.blur()

	switch p {
	case paneChat:
		return m.chat.focus()
	case paneCopilot:
		return m.copilot.focus()
	}
	return nil
}

// layout splits the width into the three columns
func (m *Model) layout() {
	sideW, chatW, copW := columnWidths(m.width)
	innerH := m.height - 3 // borders and status bar
	if innerH < 5 {
		innerH = 5
	}
	// pane frame: border (2) + padding (2)
	m.sidebar.setSize(sideW-4, innerH-1)
	m.chat.setSize(chatW-4, innerH)
	m.copilot.setSize(copW-4, innerH)
}

// columnWidths returns sidebar, chat and copilot widths
func columnWidths(total int) (int, int, int) {
	side := total / 5
	if side < 28 {
		side = 28
	}
	cop := total / 4
	if cop < 32 {
		cop = 32
	}
	chat := total - side - cop
	if chat < 20 {
		chat = 20
	}
	return side, chat, cop
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	sideW, chatW, copW := columnWidths(m.width)
	innerH := m.height - 3

	frame := func(p pane, width int, content string) string {
		style := paneStyle
		if m.focus == p {
			style = paneFocusedStyle
		}
		return style.Width(width - 2).Height(innerH).Render(content)
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		frame(paneSidebar, sideW, m.sidebar.view()),
		frame(paneChat, chatW, m.chat.view()),
		frame(paneCopilot, copW, m.copilot.view(m.chat.conv, m.chat.open, m.focus == paneCopilot)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, columns, m.renderStatusBar(m.width))
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.err != nil {
		return errorStyle.Width(width).Render("⚠ " + m.err.Error())
	}

	bindings := []key.Binding{
		m.keys.Focus, m.keys.SwitchTab, m.keys.AddToReply,
		m.keys.CopyReply, m.keys.Close, m.keys.ToggleDark, m.keys.Quit,
	}
	var items []string
	for _, b := range bindings {
		h := b.Help()
		items = append(items, statusKeyStyle.Render(h.Key)+statusDescStyle.Render(" "+h.Desc))
	}
	bar := strings.Join(items, "  │  ")
	if m.feedback != "" {
		bar = feedbackStyle.Render(m.feedback) + "  │  " + bar
	}
	return statusBarStyle.Width(width).Render(bar)
}

// Run starts the inbox TUI
func Run(ctx context.Context, session *inbox.Session, panel *copilot.Panel, opts Options) error {
	m := NewModel(ctx, session, panel, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
