package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all containers",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := getApp()
	if err != nil {
		return err
	}

	names, err := a.Runtime.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	if len(names) == 0 {
		logInfo("No containers found. Create one with: lxcctl up <name>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tIP")
	fmt.Fprintln(w, "----\t-----\t--")

	for _, name := range names {
		state, err := a.Runtime.State(ctx, name)
		if err != nil {
			logWarning("failed to query %s: %v", name, err)
			continue
		}

		// Stopped containers hold no lease, so skip the lookup.
		addr := "-"
		if addrs, err := a.Runtime.Addresses(ctx, name); err == nil {
			addr = firstAddr(addrs)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", name, state, addr)
	}

	return w.Flush()
}
