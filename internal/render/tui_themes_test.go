package render

import "testing"

func TestThemeFor(t *testing.T) {
	tests := []struct {
		name string
		dark bool
		want string
	}{
		{"tokyonight", false, "light"},
		{"nord", false, "light"},
		{"nord", true, "nord"},
		{"catppuccin", true, "catppuccin"},
		{"light", true, "tokyonight"},
		{"unknown", true, "tokyonight"},
		{"", true, "tokyonight"},
	}

	for _, tt := range tests {
		if got := ThemeFor(tt.name, tt.dark).Name; got != tt.want {
			t.Errorf("ThemeFor(%q, %v) = %s, want %s", tt.name, tt.dark, got, tt.want)
		}
	}
}

func TestGetTUIThemeByName(t *testing.T) {
	for _, name := range TUIThemeNames() {
		theme, ok := GetTUIThemeByName(name)
		if !ok || theme.Name != name {
			t.Errorf("GetTUIThemeByName(%q) = %v, %v", name, theme.Name, ok)
		}
	}
	if _, ok := GetTUIThemeByName("dracula"); ok {
		t.Error("dracula is not a TUI theme")
	}
}

func TestThemesHaveColors(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Background == "" || theme.Text == "" || theme.Primary == "" || theme.AgentBubble == "" {
			t.Errorf("theme %s has empty colors", theme.Name)
		}
		if theme.Dark == (theme.Name == "light") {
			t.Errorf("theme %s has wrong Dark flag", theme.Name)
		}
	}
}

func TestAvatarColor(t *testing.T) {
	if AvatarColor(0) != AvatarColors[0] {
		t.Error("index 0 should be blue")
	}
	if AvatarColor(7) != AvatarColors[2] {
		t.Error("indexes should wrap")
	}
	if AvatarColor(-1) != AvatarColors[1] {
		t.Error("negative indexes should not panic")
	}
}
