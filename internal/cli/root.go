// Package cli wires the eventdesk commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/atomicstack/eventdesk/internal/app"
	"github.com/atomicstack/eventdesk/internal/config"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/logging"
)

// RunFunc starts the interactive program.
type RunFunc func(ctx context.Context, cfg app.Config, client *dashboard.Client) error

// Options carries the process context into the command tree.
type Options struct {
	Environ []string
	// Args is recorded in the startup trace.
	Args []string
	// Run defaults to app.Run.
	Run RunFunc
	// OnStart is called once the configuration is loaded and logging is
	// set up.
	OnStart func(config.Config)
}

// ExitError carries a process exit code. A nil Err means the command has
// already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// session is the state shared by the commands of one invocation.
type session struct {
	opts   Options
	cfg    config.Config
	client *dashboard.Client
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive event desk.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Run == nil {
		opts.Run = app.Run
	}
	s := &session{opts: opts}

	cmd := &cobra.Command{
		Use:   "eventdesk",
		Short: "Terminal client for the event admin dashboard",
		Long: `eventdesk lists the dashboard's events, shows the details fragment of the
selected event and schedules new events through the dashboard's create form.`,
		Example: `  # Open the event desk
  eventdesk --base-url https://events.example.org --session-id $SESSION

  # Print the event table
  eventdesk events

  # Print two detail fragments
  eventdesk details 12 42`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.opts.Run(cmd.Context(), s.cfg.App, s.client)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newEventsCmd(s), newDetailsCmd(s), newCreateCmd(s))
	return cmd
}

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.FromFlags(cmd.Flags(), s.opts.Environ)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	cfg.Args = append([]string(nil), s.opts.Args...)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if err := logging.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	client, err := dashboard.New(cfg.ClientOptions())
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.client = client
	if s.opts.OnStart != nil {
		s.opts.OnStart(cfg)
	}
	return nil
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	logging.Error(err)
	var exit *ExitError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exit.Err)
		}
		return exit.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
