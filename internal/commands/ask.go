package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/posechat/internal/config"
	apierrors "github.com/diogo/posechat/internal/errors"
	"github.com/diogo/posechat/internal/markup"
	"github.com/diogo/posechat/internal/render"
	"github.com/diogo/posechat/internal/widget"
)

// cellPixels approximates the pixel width of one terminal cell.
const cellPixels = 8

var (
	colorText    = lipgloss.Color("#e0def4")
	colorPrimary = lipgloss.Color("#9ccfd8")
	colorSuccess = lipgloss.Color("#a3be8c")
	colorError   = lipgloss.Color("#eb6f92")
)

var (
	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)
)

type askOptions struct {
	output string
	raw    bool
}

// NewAskCmd creates the single message command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send a single message and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return askFromCommand(cmd, deps, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply markup to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reply markup without decoration")
	return cmd
}

func askFromCommand(cmd *cobra.Command, deps *Dependencies, text string, opts askOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runAsk(cmd.Context(), deps, cfg, text, opts)
}

// consoleView collects the exchanged elements for printing once the reply
// has been scaled. The terminal scrolls by itself.
type consoleView struct {
	width    int
	elements []*widget.Element
}

func (v *consoleView) Append(msg widget.Message) *widget.Element {
	el := widget.NewElement(msg)
	v.elements = append(v.elements, el)
	return el
}

func (v *consoleView) Width() int { return v.width * cellPixels }

func (v *consoleView) ScrollToBottom() {}

type staticInput struct{ value string }

func (i *staticInput) Value() string     { return i.value }
func (i *staticInput) SetValue(s string) { i.value = s }

// runAsk performs one exchange and prints the reply
func runAsk(ctx context.Context, deps *Dependencies, cfg config.Config, text string, opts askOptions) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message cannot be empty: %w", apierrors.ErrEmptyInput)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := setupLogging(cfg, deps.Stderr)
	sender, err := deps.NewSender(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	decorated := !opts.raw && deps.IsTTY()

	bubbleWidth := deps.TermWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	view := &consoleView{width: contentWidth}
	wopts := []widget.Option{widget.WithLogger(logger)}
	if cfg.Sanitize {
		wopts = append(wopts, widget.WithSanitizer(markup.NewSanitizer()))
	}
	w := widget.New(view, &staticInput{value: text}, sender, wopts...)

	el, err := w.Exchange(ctx)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(el.Message.Markup), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Reply saved to %s", opts.output)))
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(deps.Stdout, el.Message.Markup)
		return nil
	}

	if cfg.CopyToClipboard {
		if err := deps.CopyToClipboard(el.Doc.Text()); err != nil {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	renderOpts := render.OptionsFromConfig(cfg).WithWidth(contentWidth)
	rendered := render.Document(el.Doc, renderOpts)

	fmt.Fprintln(deps.Stdout, botLabelStyle.Render("✿ Coach"))
	fmt.Fprintln(deps.Stdout, botBubbleStyle.Width(bubbleWidth).Render(rendered))
	return nil
}
