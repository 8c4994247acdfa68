package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/diogo/copilotdesk/internal/copilot"
	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
)

// copilotTab selects the right-hand panel view
type copilotTab int

const (
	tabCopilot copilotTab = iota
	tabDetails
)

func (t copilotTab) String() string {
	if t == tabDetails {
		return "Details"
	}
	return "AI Copilot"
}

const credentialHint = "Run 'copilotdesk config set-key' or set GEMINI_API_KEY"

// Message types for the copilot panel
type (
	// copilotResultMsg carries the outcome of one Submit
	copilotResultMsg struct {
		result models.Result
	}
	animationTickMsg time.Time
)

// copilotModel is the assistant panel
type copilotModel struct {
	panel    *copilot.Panel
	tab      copilotTab
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	timeout  time.Duration

	// notice is a blocking message shown instead of a transcript entry
	notice string

	animationFrame int
	width          int
	height         int
}

func newCopilot(panel *copilot.Panel, timeout time.Duration) copilotModel {
	ti := textinput.New()
	ti.Placeholder = "Ask a Question"
	ti.Prompt = "› "
	ti.CharLimit = 2000

	s := spinner.New()
	s.Spinner = spinner.Points

	c := copilotModel{
		panel:    panel,
		viewport: viewport.New(0, 0),
		input:    ti,
		spinner:  s,
		timeout:  timeout,
	}
	c.restyle()
	return c
}

// restyle applies the current theme colors to the input and transcript
func (c *copilotModel) restyle() {
	c.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	c.input.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	c.spinner.Style = loadingStyle
	c.refresh()
}

func (c *copilotModel) setSize(width, height int) {
	c.width = width
	c.height = height
	// tabs, notice/hint line and the input
	vpHeight := height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	c.viewport.Width = width
	c.viewport.Height = vpHeight
	c.input.Width = width - 4
	c.refresh()
}

func (c *copilotModel) focus() tea.Cmd {
	return c.input.Focus()
}

func (c *copilotModel) blur() {
	c.input.Blur()
}

func (c *copilotModel) toggleTab() {
	if c.tab == tabCopilot {
		c.tab = tabDetails
	} else {
		c.tab = tabCopilot
	}
}

// submit starts a query for the current input. The returned command runs
// Submit off the UI goroutine.
func (c *copilotModel) submit(ctx context.Context) tea.Cmd {
	prompt := c.input.Value()

	_, err := c.panel.Begin(prompt)
	switch {
	case errors.Is(err, apierrors.ErrMissingCredential):
		c.notice = apierrors.CategoryMissingCredential.Message()
		return nil
	case err != nil:
		// empty prompt or already busy
		return nil
	}

	c.notice = ""
	c.input.Reset()
	c.animationFrame = 0
	c.refresh()
	c.viewport.GotoBottom()

	service := c.panel.Service()
	timeout := c.timeout
	query := func() tea.Msg {
		qctx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			qctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		result, _ := service.Submit(qctx, prompt)
		return copilotResultMsg{result: result}
	}

	return tea.Batch(query, c.spinner.Tick, animationTick())
}

// complete records the reply for a finished query
func (c *copilotModel) complete(result models.Result) {
	c.panel.Complete(result)
	c.refresh()
	c.viewport.GotoBottom()
}

// lastReply returns the newest assistant text
func (c copilotModel) lastReply() (string, bool) {
	turn, ok := c.panel.Transcript().LastReply()
	if !ok {
		return "", false
	}
	return turn.Text, true
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

func (c copilotModel) update(msg tea.Msg) (copilotModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if c.panel.Busy() {
			c.spinner, cmd = c.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return c, tea.Batch(cmds...)

	case animationTickMsg:
		if c.panel.Busy() {
			c.animationFrame++
			cmds = append(cmds, animationTick())
		}
		return c, tea.Batch(cmds...)

	case tea.KeyMsg:
		// Input stays disabled while a query is outstanding
		if c.panel.Busy() || c.tab != tabCopilot {
			break
		}
		if c.notice != "" && msg.Type == tea.KeyEsc {
			c.notice = ""
			return c, nil
		}
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// refresh rebuilds the transcript
func (c *copilotModel) refresh() {
	turns := c.panel.Transcript().Turns()
	if len(turns) == 0 {
		c.viewport.SetContent("")
		return
	}

	bubbleWidth := c.width - 4
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if turn.IsUser() {
			b.WriteString(userLabelStyle.Render("● You"))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(bubbleWidth).MarginLeft(2).Foreground(colorText).Render(turn.Text))
			continue
		}
		b.WriteString(assistantLabelStyle.Render("✦ Fin"))
		b.WriteString("\n")
		b.WriteString(copilotBubbleStyle.Width(bubbleWidth).Render(turn.Text))
	}
	c.viewport.SetContent(b.String())
}

func (c copilotModel) view(conv models.Conversation, open bool, focused bool) string {
	tabs := []string{}
	for _, t := range []copilotTab{tabCopilot, tabDetails} {
		style := tabStyle
		if t == c.tab {
			style = tabActiveStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	if c.tab == tabDetails {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", c.renderDetails(conv, open))
	}

	var body string
	if c.panel.Transcript().Len() == 0 {
		body = c.renderWelcome()
	} else {
		body = c.viewport.View()
	}

	var footer []string
	switch {
	case c.notice != "":
		footer = append(footer,
			noticeStyle.Width(c.width-2).Render(c.notice),
			hintStyle.Render(credentialHint),
		)
	case c.panel.Busy():
		footer = append(footer, c.renderLoadingAnimation())
	default:
		if _, ok := c.lastReply(); ok && focused {
			footer = append(footer, hintStyle.Render("ctrl+a add to composer • ctrl+y copy"))
		} else {
			footer = append(footer, "")
		}
	}

	input := c.input.View()
	if c.panel.Busy() {
		input = c.spinner.View() + hintStyle.Render(" waiting for reply")
	}
	footer = append(footer, input)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Height(c.viewport.Height).Render(body),
		lipgloss.JoinVertical(lipgloss.Left, footer...),
	)
}

// renderWelcome renders the empty copilot state
func (c copilotModel) renderWelcome() string {
	width := c.width - 2
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Hi, I'm Fin AI Copilot"),
		welcomeStyle.Width(width).Render("Ask me anything about the conversation."),
	)

	topPadding := (c.viewport.Height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated thinking indicator
func (c copilotModel) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := c.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Fin is thinking ")
	return fmt.Sprintf("%s %s%s", spin, text, dots.String())
}

// renderDetails renders the conversation details tab
func (c copilotModel) renderDetails(conv models.Conversation, open bool) string {
	if !open {
		return hintStyle.Render("No conversation selected")
	}

	row := func(k, v string) string {
		if v == "" {
			v = "—"
		}
		return detailKeyStyle.Render(k) + detailValueStyle.Render(v)
	}

	team := conv.Team
	if team == "" {
		team = "Unassigned"
	}

	width := c.width - 2
	lines := []string{
		row("Assignee", conv.Assignee),
		row("Team", team),
		"",
		sectionStyle.Width(width).Render("LINKS"),
		subtitleStyle.Render("Tracker Ticket"),
		subtitleStyle.Render("Back Office Tickets"),
		subtitleStyle.Render("Side Conversations"),
		"",
		sectionStyle.Width(width).Render("USER DATA"),
		row("Name", conv.Customer.Name),
		row("Email", conv.Customer.Email),
		"",
		sectionStyle.Width(width).Render("CONVERSATION ATTRIBUTES"),
		row("Status", capitalize(string(conv.Status))),
		row("Unread", fmt.Sprintf("%d", conv.Unread)),
		row("Waiting", humanize.Time(conv.LastActivity)),
		"",
		sectionStyle.Width(width).Render("COMPANY DETAILS"),
		row("Company", conv.Customer.Source),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
