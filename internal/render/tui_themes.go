package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string
	Dark        bool

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Message bubbles
	CustomerBubble lipgloss.Color
	AgentBubble    lipgloss.Color
	CopilotBubble  lipgloss.Color
}

// Avatar colors, indexed by inbox.AvatarColorIndex
var AvatarColors = []lipgloss.Color{
	lipgloss.Color("#3b82f6"), // blue
	lipgloss.Color("#ef4444"), // red
	lipgloss.Color("#22c55e"), // green
	lipgloss.Color("#6b7280"), // gray
	lipgloss.Color("#a855f7"), // purple
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",
		Dark:        true,

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		CustomerBubble: lipgloss.Color("#2f3549"),
		AgentBubble:    lipgloss.Color("#2563eb"),
		CopilotBubble:  lipgloss.Color("#3d3552"),
	}

	// CatppuccinMochaTheme is based on the Catppuccin Mocha palette
	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",
		Dark:        true,

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),

		CustomerBubble: lipgloss.Color("#313244"),
		AgentBubble:    lipgloss.Color("#1e66f5"),
		CopilotBubble:  lipgloss.Color("#45385a"),
	}

	// NordTheme is based on the Nord palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",
		Dark:        true,

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),

		CustomerBubble: lipgloss.Color("#434c5e"),
		AgentBubble:    lipgloss.Color("#5e81ac"),
		CopilotBubble:  lipgloss.Color("#4c4a63"),
	}

	// LightTheme mirrors the inbox's light mode: white panes on gray
	LightTheme = TUITheme{
		Name:        "light",
		Description: "Light - White panes for bright terminals",
		Dark:        false,

		Background: lipgloss.Color("#e5e7eb"),
		Surface:    lipgloss.Color("#ffffff"),
		Border:     lipgloss.Color("#d1d5db"),

		Primary:   lipgloss.Color("#3b82f6"),
		Secondary: lipgloss.Color("#16a34a"),
		Accent:    lipgloss.Color("#7e22ce"),
		Warning:   lipgloss.Color("#b45309"),
		Error:     lipgloss.Color("#dc2626"),

		Text:     lipgloss.Color("#111827"),
		TextDim:  lipgloss.Color("#4b5563"),
		TextMute: lipgloss.Color("#9ca3af"),

		CustomerBubble: lipgloss.Color("#e5e7eb"),
		AgentBubble:    lipgloss.Color("#93c5fd"),
		CopilotBubble:  lipgloss.Color("#e9d5f5"),
	}
)

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// ThemeFor resolves the palette for the dark-mode toggle. Light mode always
// uses LightTheme; dark mode uses the named dark theme, falling back to
// Tokyo Night.
func ThemeFor(name string, dark bool) TUITheme {
	if !dark {
		return LightTheme
	}
	if t, ok := GetTUIThemeByName(name); ok && t.Dark {
		return t
	}
	return TokyoNightTheme
}

// AvatarColor returns the palette color at index, wrapping around
func AvatarColor(index int) lipgloss.Color {
	if index < 0 {
		index = -index
	}
	return AvatarColors[index%len(AvatarColors)]
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		CatppuccinMochaTheme,
		NordTheme,
		LightTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
