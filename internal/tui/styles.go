// Package tui provides the terminal inbox: conversation list, conversation
// view with reply composer, and the AI copilot panel.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/copilotdesk/internal/render"
)

// Color variables (updated from theme)
var (
	colorBackground lipgloss.Color
	colorSurface    lipgloss.Color
	colorBorder     lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color

	colorCustomerBubble lipgloss.Color
	colorAgentBubble    lipgloss.Color
	colorCopilotBubble  lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Pane frames
	paneStyle        lipgloss.Style
	paneFocusedStyle lipgloss.Style

	// Pane headings
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Sidebar rows
	itemNameStyle     lipgloss.Style
	itemSelectedStyle lipgloss.Style
	itemPreviewStyle  lipgloss.Style
	itemMetaStyle     lipgloss.Style
	badgeStyle        lipgloss.Style

	// Conversation view
	customerBubbleStyle lipgloss.Style
	agentBubbleStyle    lipgloss.Style
	timestampStyle      lipgloss.Style
	composerStyle       lipgloss.Style
	emptyStateStyle     lipgloss.Style

	// Copilot panel
	tabStyle            lipgloss.Style
	tabActiveStyle      lipgloss.Style
	userLabelStyle      lipgloss.Style
	assistantLabelStyle lipgloss.Style
	copilotBubbleStyle  lipgloss.Style
	noticeStyle         lipgloss.Style
	detailKeyStyle      lipgloss.Style
	detailValueStyle    lipgloss.Style
	sectionStyle        lipgloss.Style

	// Welcome
	welcomeTitleStyle lipgloss.Style
	welcomeStyle      lipgloss.Style
	welcomeIconStyle  lipgloss.Style

	loadingStyle lipgloss.Style

	// Status bar
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	feedbackStyle   lipgloss.Style
	errorStyle      lipgloss.Style
)

// Gradient colors for the loading animation (fixed colors)
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"),
	lipgloss.Color("#feca57"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#ff9ff3"),
	lipgloss.Color("#54a0ff"),
	lipgloss.Color("#5f27cd"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#1dd1a1"),
}

func init() {
	UpdateTheme(render.LightTheme)
}

// UpdateTheme refreshes all styles from theme
func UpdateTheme(theme render.TUITheme) {
	colorBackground = theme.Background
	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute
	colorCustomerBubble = theme.CustomerBubble
	colorAgentBubble = theme.AgentBubble
	colorCopilotBubble = theme.CopilotBubble

	rebuildStyles()
}

func rebuildStyles() {
	paneStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	paneFocusedStyle = paneStyle.
		BorderForeground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	itemNameStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(colorPrimary).
		PaddingLeft(1)

	itemPreviewStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	itemMetaStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	badgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#ef4444")).
		Bold(true).
		Padding(0, 1)

	customerBubbleStyle = lipgloss.NewStyle().
		Background(colorCustomerBubble).
		Foreground(colorText).
		Padding(0, 1)

	agentBubbleStyle = lipgloss.NewStyle().
		Background(colorAgentBubble).
		Foreground(colorText).
		Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	composerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(colorBorder)

	emptyStateStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true).
		Padding(0, 1)

	tabActiveStyle = tabStyle.
		Foreground(colorAccent).
		Underline(true)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	copilotBubbleStyle = lipgloss.NewStyle().
		Background(colorCopilotBubble).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(2)

	noticeStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorWarning).
		Foreground(colorWarning).
		Bold(true).
		Padding(0, 1)

	detailKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Width(12)

	detailValueStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	sectionStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(colorBorder)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		Align(lipgloss.Center)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		Align(lipgloss.Center)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	feedbackStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}
