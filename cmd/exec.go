package cmd

import (
	"context"
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/errors"
)

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in a container",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

var execSSH bool

func init() {
	execCmd.Flags().BoolVar(&execSSH, "ssh", false, "Run the command over SSH instead of lxc-attach")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	// Find the command to execute (everything after --)
	var execArgs []string
	if n := cmd.ArgsLenAtDash(); n >= 1 {
		execArgs = args[n:]
	} else if len(args) > 1 {
		execArgs = args[1:]
	}

	if len(execArgs) == 0 {
		return errors.ValidationError("usage: lxcctl exec <name> -- <command>")
	}

	if _, err := requireState(ctx, name); err != nil {
		return err
	}

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	out, err := c.Run(ctx, shellquote.Join(execArgs...), execSSH)
	if err != nil {
		return codedErr(name, err)
	}

	fmt.Print(out)
	return nil
}
