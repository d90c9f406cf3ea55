// Package commands implements the pagegen command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/sunwei/pagegen/common/pagegen"
)

// Execute runs the command line with args and returns the exit code.
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := newCommandeer(os.Stdout, os.Stderr)
	root := c.newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(c.errOut, "Error:", err)
		return 1
	}
	return 0
}

// commandeer holds what the commands share.
type commandeer struct {
	out    io.Writer
	errOut io.Writer
}

func newCommandeer(out, errOut io.Writer) *commandeer {
	return &commandeer{out: out, errOut: errOut}
}

func (c *commandeer) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagegen",
		Short: "pagegen builds static HTML pages from JavaScript page modules",
		Long: `pagegen turns a directory of page modules, each default exporting a
render function, into a static site. Modules may export getPaths to
produce many pages and getProps to load their data at build time.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.AddCommand(c.newBuildCmd(), c.newVersionCmd())

	return root
}

func (c *commandeer) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pagegen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, pagegen.NewInfo())
			return nil
		},
	}
}
