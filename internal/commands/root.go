// Package commands provides CLI commands for copilotdesk.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/copilotdesk/internal/api"
	"github.com/diogo/copilotdesk/internal/config"
	"github.com/diogo/copilotdesk/internal/copilot"
	"github.com/diogo/copilotdesk/internal/inbox"
	"github.com/diogo/copilotdesk/internal/logging"
	"github.com/diogo/copilotdesk/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var errEmptyKey = errors.New("API key cannot be empty")

// rootOptions holds the flags shared by every command
type rootOptions struct {
	apiKey   string
	model    string
	logLevel string

	fixture      string
	conversation string
	dark         bool
	light        bool
	version      bool
}

// app is the wiring a command needs once flags and config are resolved
type app struct {
	cfg       config.Config
	logger    zerolog.Logger
	closer    io.Closer
	apiKey    string
	keySource config.KeySource
	client    api.GeminiClientInterface
}

func (a *app) Close() {
	_ = a.closer.Close()
}

// NewRootCmd builds the command tree over deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "copilotdesk",
		Short: "Support inbox with a Gemini-backed AI copilot",
		Long: `copilotdesk is a terminal support inbox. Conversations are listed on the
left, the selected thread in the middle, and an AI copilot on the right that
answers questions through the Gemini generateContent API.

Examples:
  copilotdesk                           Open the inbox
  copilotdesk --conversation 2          Open the inbox on a conversation
  copilotdesk ask "Draft a greeting"    Send a single copilot question
  cat notes.md | copilotdesk ask        Read the question from stdin
  copilotdesk config set-key            Store the Gemini API key`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "copilotdesk %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runInbox(cmd, deps, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (overrides "+config.APIKeyEnv+" and the keyring)")
	cmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML file with the conversations to load")
	cmd.Flags().StringVarP(&opts.conversation, "conversation", "c", "", "Conversation to open on start")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "Start in dark mode")
	cmd.Flags().BoolVar(&opts.light, "light", false, "Start in light mode")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Show version and exit")
	cmd.MarkFlagsMutuallyExclusive("dark", "light")

	cmd.AddCommand(newAskCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps, opts))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		stop()
		os.Exit(1)
	}
}

// setup resolves config, logging, the API key and the client
func setup(deps *Dependencies, opts *rootOptions, stderr io.Writer) (*app, error) {
	cfg, err := deps.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v; using defaults\n", err)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, closer, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}

	creds, err := deps.credentials()
	if err != nil {
		logger.Warn().Err(err).Msg("keyring unavailable")
	}
	apiKey, source := creds.ResolveAPIKey(opts.apiKey)

	logger.Info().
		Str("model", cfg.Model).
		Str("key_source", string(source)).
		Msg("starting")

	return &app{
		cfg:       cfg,
		logger:    logger,
		closer:    closer,
		apiKey:    apiKey,
		keySource: source,
		client:    deps.newClient(cfg, apiKey, api.WithLogger(logger)),
	}, nil
}

// loadDirectory returns the conversations from path, or the built-in set
func loadDirectory(path string) (inbox.Directory, error) {
	if path == "" {
		return inbox.Default()
	}
	return inbox.LoadFile(path)
}

func runInbox(cmd *cobra.Command, deps *Dependencies, opts *rootOptions) error {
	a, err := setup(deps, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	fixture := opts.fixture
	if fixture == "" {
		fixture = a.cfg.FixturePath
	}
	dir, err := loadDirectory(fixture)
	if err != nil {
		return fmt.Errorf("failed to load conversations: %w", err)
	}

	dark := a.cfg.DarkMode
	switch {
	case opts.dark:
		dark = true
	case opts.light:
		dark = false
	}

	service := copilot.NewService(a.client, copilot.WithServiceLogger(a.logger))
	return deps.TUI.RunInbox(cmd.Context(), inbox.NewSession(dir), copilot.NewPanel(service), tui.Options{
		Theme:               a.cfg.TUITheme,
		DarkMode:            dark,
		Timeout:             time.Duration(a.cfg.RequestTimeout) * time.Second,
		InitialConversation: opts.conversation,
		Logger:              a.logger,
	})
}
