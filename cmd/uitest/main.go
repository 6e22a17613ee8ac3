// Command uitest runs the sentact.com UI scenarios against a Chrome browser
// and reports one line per scenario.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "uitest",
		Short:         "End-to-end UI checks of sentact.com",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// The glog flags are already set through the pflag wrappers;
			// parsing an empty list marks the set as parsed.
			return flag.CommandLine.Parse(nil)
		},
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.SetOut(out)
	root.AddCommand(newRunCommand(out), newListCommand(out))
	return root
}

func main() {
	err := newRootCommand(os.Stdout).Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "uitest:", err)
		os.Exit(1)
	}
}
