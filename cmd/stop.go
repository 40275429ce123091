package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/runtime"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a running container",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	state, err := requireState(ctx, name)
	if err != nil {
		return err
	}
	if state != runtime.StatusRunning {
		logInfo("Container %s is not running", name)
		return nil
	}

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	logInfo("Stopping container %s...", name)
	if err := c.Stop(ctx); err != nil {
		return codedErr(name, err)
	}

	logSuccess("Stopped container %s", name)
	return nil
}
