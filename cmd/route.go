package cmd

import (
	"context"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/errors"
)

var routeCmd = &cobra.Command{
	Use:   "route <name> <cidr>",
	Short: "Install a host route through a container",
	Long: `route installs a static route on the host sending traffic for the
given CIDR through the container's IP address on the configured bridge.

This is normally done by "up"; route exists to repair or redirect
routing after the fact.`,
	Args: cobra.ExactArgs(2),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	target, err := netip.ParsePrefix(args[1])
	if err != nil {
		return errors.ValidationError("invalid CIDR: " + args[1])
	}

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	if err := c.SetStaticRoute(ctx, target); err != nil {
		return errors.RouteFailed(target.String(), err)
	}

	logSuccess("Route to %s installed via %s", target, name)
	return nil
}
