package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/runtime"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a stopped container",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	state, err := requireState(ctx, name)
	if err != nil {
		return err
	}
	if state == runtime.StatusRunning {
		logInfo("Container %s is already running", name)
		return nil
	}

	c, err := getContainer(name)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return codedErr(name, err)
	}

	logSuccess("Started container %s", name)
	return nil
}
