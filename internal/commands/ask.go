package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/copilotdesk/internal/config"
	"github.com/diogo/copilotdesk/internal/copilot"
	apierrors "github.com/diogo/copilotdesk/internal/errors"
	"github.com/diogo/copilotdesk/internal/models"
	"github.com/diogo/copilotdesk/internal/render"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorError    = lipgloss.Color("#f7768e")
)

// Styles matching the copilot panel
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// isTerminal reports whether w is an interactive terminal. Replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 80
var terminalWidth = func(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// askOptions holds the ask command's own flags
type askOptions struct {
	file     string
	output   string
	markdown bool
	raw      bool
	copy     bool
}

func newAskCmd(deps *Dependencies, root *rootOptions) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the copilot a single question",
		Long: `Send one question to the AI copilot and print the reply.

The question is read from --file, then piped stdin, then the argument.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd, opts.file, args)
			if err != nil {
				return err
			}
			if prompt == "" {
				return cmd.Help()
			}
			return runAsk(cmd, deps, root, opts, prompt)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the question from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to file")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Render the reply as markdown")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the reply to the clipboard")

	return cmd
}

// readPrompt returns the question from the file flag, piped stdin or args,
// in that order
func readPrompt(cmd *cobra.Command, file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if in := cmd.InOrStdin(); hasPipedInput(in) {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if prompt := strings.TrimSpace(string(data)); prompt != "" {
			return prompt, nil
		}
	}

	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	return "", nil
}

// hasPipedInput reports whether r carries data that is not a terminal
func hasPipedInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// runAsk executes a single query and writes the reply
func runAsk(cmd *cobra.Command, deps *Dependencies, root *rootOptions, opts *askOptions, prompt string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	a, err := setup(deps, root, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	decorated := !opts.raw && isTerminal(stdout)

	service := copilot.NewService(a.client, copilot.WithServiceLogger(a.logger))

	ctx := cmd.Context()
	if a.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.cfg.RequestTimeout)*time.Second)
		defer cancel()
	}

	var spin *spinner
	if decorated && service.HasCredential() {
		spin = newSpinner(stderr, "Asking Fin")
		spin.start()
	}

	start := time.Now()
	_, result, err := copilot.NewPanel(service).Ask(ctx, prompt)
	if errors.Is(err, apierrors.ErrMissingCredential) {
		result = models.Failure(apierrors.CategoryMissingCredential)
	} else if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return err
	}
	a.logger.Debug().Dur("elapsed", time.Since(start)).Bool("success", result.IsSuccess()).Msg("ask finished")

	if !result.IsSuccess() {
		if spin != nil {
			spin.stopWithError()
		}
		return &replyError{category: result.Category(), message: result.Message()}
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	text := result.Reply()

	if opts.copy || a.cfg.CopyToClipboard {
		if err := deps.CopyToClipboard(text); err != nil {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			))
		} else if decorated {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", opts.output),
			))
		}
		return nil
	}

	if opts.markdown {
		width := terminalWidth(stdout) - 8
		if width < 40 {
			width = 40
		}
		rendered, err := render.Markdown(text, render.OptionsFromConfig(a.cfg, width))
		if err != nil {
			a.logger.Warn().Err(err).Msg("markdown render failed")
		} else {
			text = strings.TrimRight(rendered, "\n")
		}
	}

	if !decorated {
		fmt.Fprint(stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	bubbleWidth := terminalWidth(stdout) - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	fmt.Fprintln(stdout, assistantLabelStyle.Render("✦ Fin"))
	fmt.Fprintln(stdout, assistantBubbleStyle.Width(bubbleWidth).Render(text))
	return nil
}

// replyError is a failed copilot reply surfaced as a command error
type replyError struct {
	category apierrors.Category
	message  string
}

func (e *replyError) Error() string {
	return e.message
}

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	category := apierrors.Classify(err)
	var reply *replyError
	if errors.As(err, &reply) {
		category = reply.category
	}

	switch {
	case category == apierrors.CategoryMissingCredential:
		sb.WriteString(dimStyle.Render("\n  Hint: " + credentialHint))
	case category == apierrors.CategoryBadRequest, category == apierrors.CategoryUnauthorized, category == apierrors.CategoryForbidden:
		sb.WriteString(dimStyle.Render("\n  Hint: Check the key with 'copilotdesk config show' or store a new one with 'copilotdesk config set-key'"))
	case category == apierrors.CategoryRateLimited:
		sb.WriteString(dimStyle.Render("\n  Hint: You've hit the usage limit. Try again later or use a different model"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	}

	return sb.String()
}

const credentialHint = "Run 'copilotdesk config set-key' or set " + config.APIKeyEnv
