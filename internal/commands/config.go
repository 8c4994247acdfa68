package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/copilotdesk/internal/config"
	"github.com/diogo/copilotdesk/internal/logging"
	"github.com/diogo/copilotdesk/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies, root *rootOptions) *cobra.Command {
	deps = deps.withDefaults()
	if root == nil {
		root = &rootOptions{}
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
		Long:  `Show the current settings, change them, and manage the stored Gemini API key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, deps, root)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, deps, root)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key [key]",
		Short: "Store the Gemini API key in the OS keyring",
		Long: `Store the Gemini API key in the OS keyring.

The key is taken from the argument, then piped stdin, then a masked prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetKey(cmd, deps, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear-key",
		Short: "Remove the stored Gemini API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := deps.credentials()
			if err != nil {
				return fmt.Errorf("keyring unavailable: %w", err)
			}
			if err := creds.DeleteAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ API key removed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting and save the config file.

Keys: ` + strings.Join(settingKeys(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return err
			}
			if err := applySetting(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := deps.saveConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}

var (
	configKeyStyle   = lipgloss.NewStyle().Foreground(colorTextDim).Width(20)
	configValueStyle = lipgloss.NewStyle().Foreground(colorText)
)

func runConfigShow(cmd *cobra.Command, deps *Dependencies, root *rootOptions) error {
	out := cmd.OutOrStdout()

	cfg, err := deps.loadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; showing defaults\n", err)
	}

	creds, kerr := deps.credentials()
	key, source := creds.ResolveAPIKey(root.apiKey)

	path := deps.ConfigPath
	if path == "" {
		path, _ = config.GetConfigPath()
	}

	row := func(k, v string) {
		fmt.Fprintln(out, configKeyStyle.Render(k)+configValueStyle.Render(v))
	}
	row("config file", path)
	row("model", cfg.Model)
	row("endpoint", orDefault(cfg.Endpoint, "(default)"))
	row("request_timeout", fmt.Sprintf("%ds", cfg.RequestTimeout))
	row("tui_theme", cfg.TUITheme)
	row("dark_mode", strconv.FormatBool(cfg.DarkMode))
	row("copy_to_clipboard", strconv.FormatBool(cfg.CopyToClipboard))
	row("fixture_path", orDefault(cfg.FixturePath, "(built-in)"))
	row("log_file", cfg.LogFile)
	row("log_level", cfg.LogLevel)
	row("markdown.style", orDefault(cfg.Markdown.Style, render.StyleDark))
	row("api key", fmt.Sprintf("%s (%s)", config.MaskKey(key), source))
	if kerr != nil {
		row("keyring", "unavailable: "+kerr.Error())
	}
	return nil
}

func runSetKey(cmd *cobra.Command, deps *Dependencies, args []string) error {
	creds, err := deps.credentials()
	if err != nil {
		return fmt.Errorf("keyring unavailable: %w", err)
	}

	var key string
	switch {
	case len(args) == 1:
		key = args[0]
	case hasPipedInput(cmd.InOrStdin()):
		key, err = readLine(cmd.InOrStdin())
	default:
		key, err = deps.PromptAPIKey()
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return errEmptyKey
	}

	if err := creds.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ API key stored (%s)\n", config.MaskKey(strings.TrimSpace(key)))
	return nil
}

// readLine returns the first line of r
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// settingSetters maps each settable key to a parser
var settingSetters = map[string]func(*config.Config, string) error{
	"model": func(c *config.Config, v string) error {
		c.Model = v
		return nil
	},
	"endpoint": func(c *config.Config, v string) error {
		c.Endpoint = v
		return nil
	},
	"request_timeout": func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("request_timeout must be a non-negative number of seconds")
		}
		c.RequestTimeout = n
		return nil
	},
	"tui_theme": func(c *config.Config, v string) error {
		if _, ok := render.GetTUIThemeByName(v); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", v, strings.Join(render.TUIThemeNames(), ", "))
		}
		c.TUITheme = v
		return nil
	},
	"dark_mode": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("dark_mode must be true or false")
		}
		c.DarkMode = b
		return nil
	},
	"copy_to_clipboard": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false")
		}
		c.CopyToClipboard = b
		return nil
	},
	"fixture_path": func(c *config.Config, v string) error {
		c.FixturePath = v
		return nil
	},
	"log_file": func(c *config.Config, v string) error {
		c.LogFile = v
		return nil
	},
	"log_level": func(c *config.Config, v string) error {
		if logging.ParseLevel(v).String() != strings.ToLower(v) && v != "warning" && v != "off" {
			return fmt.Errorf("unknown log level %q", v)
		}
		c.LogLevel = v
		return nil
	},
	"markdown.style": func(c *config.Config, v string) error {
		c.Markdown.Style = v
		return nil
	},
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applySetting parses value into the field named by key
func applySetting(cfg *config.Config, key, value string) error {
	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (available: %s)", key, strings.Join(settingKeys(), ", "))
	}
	return set(cfg, value)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
