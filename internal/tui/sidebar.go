package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/models"
	"github.com/diogo/copilotdesk/internal/render"
)

// conversationItem adapts a Conversation to bubbles/list
type conversationItem struct {
	conv models.Conversation
}

// FilterValue matches on customer, source and preview
func (i conversationItem) FilterValue() string {
	return strings.Join([]string{i.conv.Customer.Name, i.conv.Customer.Source, i.conv.Preview}, " ")
}

// conversationDelegate renders two-line inbox rows
type conversationDelegate struct {
	now func() time.Time
}

func (d conversationDelegate) Height() int { return 2 }

func (d conversationDelegate) Spacing() int { return 1 }

func (d conversationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conversationDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(conversationItem)
	if !ok {
		return
	}
	c := ci.conv
	width := m.Width() - 2

	avatar := avatarStyle(c.Customer.Name).Render(inbox.Initial(c.Customer.Name))
	if c.Unread > 0 {
		avatar += badgeStyle.Render(fmt.Sprintf("%d", c.Unread))
	}

	name := itemNameStyle.Render(c.Customer.Name)
	if c.Customer.Source != "" {
		name += itemMetaStyle.Render(" • " + c.Customer.Source)
	}
	age := itemMetaStyle.Render(humanize.RelTime(c.LastActivity, d.now(), "ago", "from now"))

	gap := width - lipgloss.Width(avatar) - lipgloss.Width(name) - lipgloss.Width(age) - 2
	if gap < 1 {
		gap = 1
	}
	top := avatar + " " + name + strings.Repeat(" ", gap) + age
	preview := itemPreviewStyle.Render(truncate(c.Preview, width-4))
	row := lipgloss.JoinVertical(lipgloss.Left, top, "    "+preview)

	if index == m.Index() {
		row = itemSelectedStyle.Render(row)
	} else {
		row = lipgloss.NewStyle().PaddingLeft(2).Render(row)
	}
	fmt.Fprint(w, row)
}

// avatarStyle colors the avatar glyph by name
func avatarStyle(name string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(render.AvatarColor(inbox.AvatarColorIndex(name))).
		Bold(true).
		Padding(0, 1)
}

// sidebarModel is the conversation list
type sidebarModel struct {
	list list.Model
}

func newSidebar(conversations []models.Conversation, now func() time.Time) sidebarModel {
	sorted := make([]models.Conversation, len(conversations))
	copy(sorted, conversations)
	// Waiting longest first
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastActivity.Before(sorted[j].LastActivity)
	})

	items := make([]list.Item, len(sorted))
	for i, c := range sorted {
		items[i] = conversationItem{conv: c}
	}

	l := list.New(items, conversationDelegate{now: now}, 0, 0)
	l.Title = "Your inbox"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle

	return sidebarModel{list: l}
}

func (s *sidebarModel) setSize(width, height int) {
	s.list.SetSize(width, height)
}

// filtering reports whether the filter prompt is capturing keys
func (s sidebarModel) filtering() bool {
	return s.list.FilterState() == list.Filtering
}

// selected returns the highlighted conversation
func (s sidebarModel) selected() (models.Conversation, bool) {
	ci, ok := s.list.SelectedItem().(conversationItem)
	if !ok {
		return models.Conversation{}, false
	}
	return ci.conv, true
}

// selectID moves the cursor to the conversation with id
func (s *sidebarModel) selectID(id string) bool {
	for i, item := range s.list.Items() {
		if ci, ok := item.(conversationItem); ok && ci.conv.ID == id {
			s.list.Select(i)
			return true
		}
	}
	return false
}

// openCount counts conversations that are not closed
func (s sidebarModel) openCount() int {
	n := 0
	for _, item := range s.list.Items() {
		if ci, ok := item.(conversationItem); ok && ci.conv.Status != models.StatusClosed {
			n++
		}
	}
	return n
}

func (s sidebarModel) update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s sidebarModel) view() string {
	filters := subtitleStyle.Render(fmt.Sprintf("%d Open ▾", s.openCount())) +
		"   " + subtitleStyle.Render("Waiting longest ▾")
	return lipgloss.JoinVertical(lipgloss.Left, filters, s.list.View())
}

// truncate shortens s to width runes, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
