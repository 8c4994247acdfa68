package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/copilotdesk/internal/copilot"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/models"
)

const (
	timeFormat     = "3:04 PM"
	composerHeight = 3
	chatHeader     = 2
)

// chatModel shows one conversation and the reply composer
type chatModel struct {
	conv     models.Conversation
	thread   *inbox.Thread
	open     bool
	viewport viewport.Model
	composer textarea.Model
	width    int
	height   int
}

func newChat(keys KeyMap) chatModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(composerHeight - 1)
	ta.KeyMap.InsertNewline = keys.Newline

	c := chatModel{
		viewport: viewport.New(0, 0),
		composer: ta,
	}
	c.restyle()
	return c
}

// restyle applies the current theme colors to the composer
func (c *chatModel) restyle() {
	c.composer.FocusedStyle.CursorLine = lipgloss.NewStyle()
	c.composer.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	c.composer.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	c.composer.BlurredStyle = c.composer.FocusedStyle
	c.refresh()
}

func (c *chatModel) setSize(width, height int) {
	c.width = width
	c.height = height
	vpHeight := height - chatHeader - composerHeight - 2
	if vpHeight < 3 {
		vpHeight = 3
	}
	c.viewport.Width = width
	c.viewport.Height = vpHeight
	c.composer.SetWidth(width)
	c.refresh()
}

// openConversation switches the view to conv. The composer keeps its draft.
func (c *chatModel) openConversation(conv models.Conversation, thread *inbox.Thread) {
	c.conv = conv
	c.thread = thread
	c.open = true
	c.refresh()
	c.viewport.GotoBottom()
}

// close shows the empty state
func (c *chatModel) close() {
	c.conv = models.Conversation{}
	c.thread = nil
	c.open = false
	c.composer.Reset()
	c.viewport.SetContent("")
}

// absorb moves a pending copilot handoff into the composer
func (c *chatModel) absorb(bridge *copilot.Bridge) bool {
	if !c.open {
		return false
	}
	text, ok := bridge.Consume()
	if !ok {
		return false
	}
	c.composer.SetValue(text)
	c.composer.CursorEnd()
	return true
}

// send posts the composer contents as an agent reply
func (c *chatModel) send() bool {
	if !c.open || c.thread == nil {
		return false
	}
	if _, ok := c.thread.Send(c.composer.Value()); !ok {
		return false
	}
	c.composer.Reset()
	c.refresh()
	c.viewport.GotoBottom()
	return true
}

func (c *chatModel) focus() tea.Cmd {
	return c.composer.Focus()
}

func (c *chatModel) blur() {
	c.composer.Blur()
}

func (c chatModel) update(msg tea.Msg, keys KeyMap) (chatModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Send) {
		c.send()
		return c, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if c.open {
		c.composer, cmd = c.composer.Update(msg)
		cmds = append(cmds, cmd)
	}
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// refresh rebuilds the transcript
func (c *chatModel) refresh() {
	if !c.open || c.thread == nil {
		return
	}

	var b strings.Builder
	bubbleWidth := c.width * 7 / 10
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range c.thread.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(c.renderMessage(msg, bubbleWidth))
	}
	c.viewport.SetContent(b.String())
}

func (c chatModel) renderMessage(msg models.Message, bubbleWidth int) string {
	meta := msg.Timestamp.Format(timeFormat)

	if msg.FromCustomer {
		avatar := avatarStyle(c.conv.Customer.Name).Render(inbox.Initial(c.conv.Customer.Name))
		bubble := customerBubbleStyle.Width(bubbleWidth).Render(msg.Text)
		line := lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", bubble)
		return lipgloss.JoinVertical(lipgloss.Left, line, timestampStyle.Render("    "+meta))
	}

	if msg.Status != "" {
		meta += "  " + capitalize(string(msg.Status))
	}
	avatar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#374151")).
		Bold(true).
		Padding(0, 1).
		Render("A")
	bubble := agentBubbleStyle.Width(bubbleWidth).Render(msg.Text)
	line := lipgloss.JoinHorizontal(lipgloss.Top, bubble, " ", avatar)
	block := lipgloss.JoinVertical(lipgloss.Right, line, timestampStyle.Render(meta+"    "))
	return lipgloss.PlaceHorizontal(c.width, lipgloss.Right, block)
}

func (c chatModel) view() string {
	if !c.open {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("No conversation selected"),
			subtitleStyle.Render("Choose a conversation from the inbox to start chatting"),
		)
		return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, emptyStateStyle.Render(empty))
	}

	name := c.conv.Customer.Name
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		avatarStyle(name).Render(inbox.Initial(name)),
		" ",
		titleStyle.Render(name),
	)

	composer := composerStyle.Width(c.width).Render(lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Chat ▾")+hintStyle.Render("   enter send • alt+enter newline"),
		c.composer.View(),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		c.viewport.View(),
		composer,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
