// Package main srun captive portal client
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errNoCommand = errors.New("command is not specified")

// failure an error of the operation itself, anything else is a usage error
type failure struct {
	err error
}

func (f *failure) Error() string {
	return f.err.Error()
}

func (f *failure) Unwrap() error {
	return f.err
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &application{
		stdout: stdout,
		stderr: stderr,
	}

	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}

	var f *failure
	if errors.As(err, &f) {
		fmt.Fprintf(stderr, "Error: %v\n", f.err)
		return exitFailure
	}

	if cmd == nil {
		cmd = root
	}
	fmt.Fprintf(stderr, "Error: %v\n%s", err, cmd.UsageString())

	return exitUsage
}

func newRootCommand(app *application) *cobra.Command {
	root := &cobra.Command{
		Use:           "srun",
		Short:         "SRUN captive portal client",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&app.configDir, "config", "c", "", "directory of config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Log in and save the session identifier",
			Args:  cobra.NoArgs,
			RunE:  app.operation(app.login),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Close the session saved by login",
			Args:  cobra.NoArgs,
			RunE:  app.operation(app.logout),
		},
		&cobra.Command{
			Use:   "kick",
			Short: "Close every session of the account",
			Args:  cobra.NoArgs,
			RunE:  app.operation(app.kick),
		},
		&cobra.Command{
			Use:   "interfaces",
			Short: "List network interfaces and their hardware addresses",
			Args:  cobra.NoArgs,
			RunE:  app.operation(app.interfaces),
		},
	)

	return root
}
