// Command livellm renders a token stream as live terminal UI, turning
// embedded component blocks into widgets as they finish streaming.
//
// The default input is the newline-delimited JSON wire format on stdin or
// from a file argument. --sse and --ws switch to server-sent events or a
// websocket as the source.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fwojciec/livellm"
	"github.com/fwojciec/livellm/markdown"
	"github.com/fwojciec/livellm/tui"
	"github.com/fwojciec/livellm/widget"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "livellm: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	sseURL   string
	wsURL    string
	event    string
	plain    bool
	repair   bool
	maxBytes int
	width    int
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "livellm [file]",
		Short: "Render a token stream as live terminal UI",
		Long: `Livellm renders a streaming LLM response token by token, detecting
embedded component blocks and replacing them with widgets.

Sources:
  livellm session.ndjson       Replay a recorded stream from a file
  cat stream | livellm         Read the wire format from stdin
  livellm --sse URL            Consume a server-sent-events endpoint
  livellm --ws URL             Consume a websocket endpoint`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.sseURL, "sse", "", "Read a server-sent-events stream from a URL")
	cmd.Flags().StringVar(&opts.wsURL, "ws", "", "Read a websocket stream from a URL")
	cmd.Flags().StringVar(&opts.event, "event", "", "SSE event name to consume (default: all)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Render once to stdout instead of running the TUI")
	cmd.Flags().BoolVar(&opts.repair, "repair", false, "Attempt to repair truncated component JSON")
	cmd.Flags().IntVar(&opts.maxBytes, "max-component-bytes", livellm.DefaultMaxComponentBytes, "Component body size limit")
	cmd.Flags().IntVar(&opts.width, "width", livellm.DefaultWidth, "Render width in plain mode")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, opts *options, path string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	source, cleanup, err := buildSource(opts, path, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	theme := livellm.DefaultTheme()
	sessOpts := sessionOptions(opts, theme)

	if opts.plain {
		return runPlain(ctx, os.Stdout, source, opts, sessOpts)
	}
	return tui.Run(ctx, tui.New(source, theme, sessOpts...))
}

func sessionOptions(opts *options, theme livellm.Theme) []livellm.Option {
	sessOpts := []livellm.Option{
		livellm.WithTheme(theme),
		livellm.WithRegistry(widget.DefaultRegistry(theme)),
		livellm.WithMarkdown(markdown.New(theme)),
		livellm.WithMaxComponentBytes(opts.maxBytes),
	}
	if opts.repair {
		sessOpts = append(sessOpts, livellm.WithRepair())
	}
	return sessOpts
}

// runPlain consumes the whole stream without a TUI and writes the final
// frame to w.
func runPlain(ctx context.Context, w io.Writer, source tui.SourceFunc, opts *options, sessOpts []livellm.Option) error {
	container := &livellm.Container{}
	sessOpts = append(sessOpts,
		livellm.WithWidth(opts.width),
		livellm.WithTicker(livellm.ImmediateTicker{}),
	)
	sess := livellm.NewSession(container, nil, sessOpts...)

	if err := source(ctx, sess); err != nil {
		return err
	}
	frame := container.Frame(opts.width)
	if frame != "" {
		fmt.Fprintln(w, frame)
	}
	return nil
}
