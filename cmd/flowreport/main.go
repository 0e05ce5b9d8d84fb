// Command flowreport turns BPMN process definitions into ordered activity
// reports, either one document at a time or as an HTTP service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/flowreport/errors"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitEmpty   = 2
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case apperrors.IsEmptyResult(err):
		_, _ = fmt.Fprintln(stderr, "flowreport: nothing to report")
		return exitEmpty
	default:
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "flowreport",
		Short: "Ordered activity reports from BPMN process definitions",
		Long: `flowreport reads a BPMN 2.0 definition, walks every process from its
start events and lists the tasks in the order they are reached, together with
the role responsible for each.

Use "analyze" for a single document and "serve" to expose POST /v1/reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configFile, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&g.envFile, "env-file", "", "Env file loaded before FLOWREPORT_* variables are read")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalyzeCmd(g),
		newServeCmd(g),
		newVersionCmd(),
	)
	return cmd
}
