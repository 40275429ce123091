package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/app"
	"github.com/uoi-cloud/lxcctl/internal/errors"
	"github.com/uoi-cloud/lxcctl/internal/logging"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/tui"
)

var attachCmd = &cobra.Command{
	Use:   "attach [name]",
	Short: "Attach a shell to a container",
	Long: `Attach opens a shell inside a container.

With a name, attaches directly. Without one, opens an interactive
picker. Use arrow keys or j/k to navigate, / to filter, Enter to
attach, d to destroy, q/Esc to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := getApp()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if _, err := requireState(ctx, args[0]); err != nil {
			return err
		}
		return attachToContainer(a, args[0])
	}

	infos, err := listInfos(ctx, a)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		logInfo("No containers found. Create one with: lxcctl up <name>")
		return nil
	}

	result, err := tui.RunPicker(infos)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionAttach:
		if result.Container != nil {
			return attachToContainer(a, result.Container.Name)
		}

	case tui.ActionDestroy:
		if result.Container != nil {
			fmt.Printf("\nTo remove container '%s', run:\n", result.Container.Name)
			fmt.Printf("  lxcctl destroy %s\n", result.Container.Name)
		}

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}

// listInfos gathers state and addresses for every known container.
func listInfos(ctx context.Context, a *app.App) ([]*runtime.Info, error) {
	names, err := a.Runtime.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	infos := make([]*runtime.Info, 0, len(names))
	for _, name := range names {
		state, err := a.Runtime.State(ctx, name)
		if err != nil {
			state = runtime.StatusUnknown
		}
		addrs, _ := a.Runtime.Addresses(ctx, name)
		infos = append(infos, &runtime.Info{Name: name, Status: state, Addresses: addrs})
	}
	return infos, nil
}

func attachToContainer(a *app.App, name string) error {
	logging.Debug("attaching to container", "name", name)

	attachArgs := []string{}
	if a.Config.LXCPath != "" {
		attachArgs = append(attachArgs, "-P", a.Config.LXCPath)
	}
	attachArgs = append(attachArgs, "-n", name)

	if err := a.Exec.ReplaceProcess("lxc-attach", attachArgs...); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to attach", err)
	}
	return nil
}
