package render

import (
	"os"

	"github.com/diogo/copilotdesk/internal/config"
)

// OptionsFromConfig builds render options from the markdown section of cfg.
// GLAMOUR_STYLE overrides the configured style.
func OptionsFromConfig(cfg config.Config, width int) Options {
	md := cfg.Markdown
	opts := Options{
		Width:            width,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
	if opts.Style == "" {
		opts.Style = StyleDark
	}

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
