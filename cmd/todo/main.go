package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-todo-client/internal/client"
	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		report(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs one command line and releases the session store afterwards
func execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut, logger: logging.Discard()}
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Warn("failed to close session store", "error", err.Error())
		}
	}()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage your tasks from the terminal",
		Long:          "Command line client for the todo API. The session token is kept between runs in the configured session store.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides TODO_API_URL)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log HTTP requests to stderr")

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newStatusCmd(a),
		newTasksCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newToggleCmd(a),
		newRemoveCmd(a),
	)

	return rootCmd
}

// report prints err for the user, with a login hint when the session is missing or expired
func report(w io.Writer, err error) {
	if ui.IsAborted(err) {
		fmt.Fprintln(w, "Aborted.")
		return
	}
	ui.PrintError(w, err.Error())
	if client.IsUnauthorized(err) {
		ui.PrintLoginHint(w)
	}
}
