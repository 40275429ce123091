package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/tui"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy [name]",
	Short: "Stop and remove a container",
	Long: `Destroy stops a container if it is running and removes it.

Without a name, opens an interactive picker; the selected container
is destroyed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDestroy,
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		picked, err := pickContainer(ctx)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		name = picked
	}

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	logging.Debug("removing container", "name", name)
	logInfo("Removing container %s...", name)

	// Destroy is a noop for containers that don't exist and stops
	// running containers first.
	if err := c.Destroy(ctx); err != nil {
		return codedErr(name, err)
	}

	logSuccess("Removed container %s", name)
	return nil
}

// pickContainer opens the TUI picker and returns the selected
// container name, or "" when the user quit without selecting.
func pickContainer(ctx context.Context) (string, error) {
	a, err := getApp()
	if err != nil {
		return "", err
	}

	infos, err := listInfos(ctx, a)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		logInfo("No containers found. Create one with: lxcctl up <name>")
		return "", nil
	}

	result, err := tui.RunPicker(infos)
	if err != nil {
		return "", fmt.Errorf("picker error: %w", err)
	}

	if result.Container == nil || result.Action == tui.ActionQuit || result.Action == tui.ActionNone {
		return "", nil
	}
	return result.Container.Name, nil
}
