package commands

import (
	"context"
	"time"

	"github.com/99designs/keyring"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"

	"github.com/diogo/copilotdesk/internal/api"
	"github.com/diogo/copilotdesk/internal/config"
	"github.com/diogo/copilotdesk/internal/copilot"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/models"
	"github.com/diogo/copilotdesk/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunInbox(ctx context.Context, session *inbox.Session, panel *copilot.Panel, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client replaces the REST client built from configuration when set.
	Client api.GeminiClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// OpenKeyring opens the credential store. A failure leaves keyring
	// lookups disabled.
	OpenKeyring func() (keyring.Keyring, error)

	// PromptAPIKey asks the user for a key on a terminal.
	PromptAPIKey func() (string, error)

	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(string) error

	// ConfigPath overrides the config file location.
	ConfigPath string
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunInbox(ctx context.Context, session *inbox.Session, panel *copilot.Panel, opts tui.Options) error {
	return tui.Run(ctx, session, panel, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:             &DefaultTUI{},
		OpenKeyring:     config.OpenKeyring,
		PromptAPIKey:    promptAPIKey,
		CopyToClipboard: clipboard.WriteAll,
	}
}

// withDefaults fills unset fields so a partially built Dependencies is usable
func (d *Dependencies) withDefaults() *Dependencies {
	if d == nil {
		return NewDependencies()
	}
	out := *d
	defaults := NewDependencies()
	if out.TUI == nil {
		out.TUI = defaults.TUI
	}
	if out.OpenKeyring == nil {
		out.OpenKeyring = defaults.OpenKeyring
	}
	if out.PromptAPIKey == nil {
		out.PromptAPIKey = defaults.PromptAPIKey
	}
	if out.CopyToClipboard == nil {
		out.CopyToClipboard = defaults.CopyToClipboard
	}
	return &out
}

// loadConfig reads the config file, keeping defaults on a parse error
func (d *Dependencies) loadConfig() (config.Config, error) {
	if d.ConfigPath != "" {
		return config.LoadConfigFrom(d.ConfigPath)
	}
	return config.LoadConfig()
}

// saveConfig writes cfg to the same location loadConfig reads
func (d *Dependencies) saveConfig(cfg config.Config) error {
	if d.ConfigPath != "" {
		return config.SaveConfigTo(d.ConfigPath, cfg)
	}
	return config.SaveConfig(cfg)
}

// credentials opens the keyring and wraps it. The keyring error is returned
// alongside a usable Credentials that only sees the flag and environment.
func (d *Dependencies) credentials() (*config.Credentials, error) {
	ring, err := d.OpenKeyring()
	if err != nil {
		return config.NewCredentials(nil), err
	}
	return config.NewCredentials(ring), nil
}

// newClient builds the generateContent client for cfg
func (d *Dependencies) newClient(cfg config.Config, apiKey string, opts ...api.ClientOption) api.GeminiClientInterface {
	if d.Client != nil {
		return d.Client
	}

	clientOpts := []api.ClientOption{
		api.WithModel(models.ModelFromName(cfg.Model)),
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, api.WithBaseURL(cfg.Endpoint))
	}
	if cfg.RequestTimeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second))
	}
	clientOpts = append(clientOpts, opts...)
	return api.NewClient(apiKey, clientOpts...)
}

// promptAPIKey reads a key with a masked terminal prompt
func promptAPIKey() (string, error) {
	var key string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				Description("Stored in the OS keyring").
				EchoMode(huh.EchoModePassword).
				Value(&key).
				Validate(func(s string) error {
					if s == "" {
						return errEmptyKey
					}
					return nil
				}),
		),
	).Run()
	return key, err
}
