package cmd

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/spf13/cobra"

	"github.com/uoi-cloud/lxcctl/internal/container"
	"github.com/uoi-cloud/lxcctl/internal/errors"
	"github.com/uoi-cloud/lxcctl/internal/logging"
)

var upCmd = &cobra.Command{
	Use:   "up <name>",
	Short: "Create and start a new container",
	Args:  cobra.ExactArgs(1),
	RunE:  runUp,
}

var (
	upUserdata string
	upWait     int
	upNoRoute  bool
)

func init() {
	upCmd.Flags().StringVarP(&upUserdata, "userdata", "u", "", "Path to cloud-init user data file")
	upCmd.Flags().IntVar(&upWait, "wait", 60, "Seconds to wait for the container to acquire an address")
	upCmd.Flags().BoolVar(&upNoRoute, "no-route", false, "Skip installing the host route to the container subnet")
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	logging.Debug("starting container creation", "name", name)
	logInfo("Creating container %s...", name)

	if err := c.Create(ctx, upUserdata); err != nil {
		return codedErr(name, err)
	}

	sub, err := c.WriteNetConfig(ctx)
	if err != nil {
		return codedErr(name, err)
	}
	logInfo("Allocated subnet %s", sub)

	if err := c.Start(ctx); err != nil {
		return codedErr(name, err)
	}

	ip, err := waitForIP(ctx, c, time.Duration(upWait)*time.Second, time.Second)
	if err != nil {
		return codedErr(name, err)
	}

	if !upNoRoute {
		if err := c.SetStaticRoute(ctx, sub); err != nil {
			return errors.RouteFailed(sub.String(), err)
		}
	}

	logSuccess("Container %s is up", name)
	fmt.Printf("  IP: %s\n", ip)
	fmt.Printf("  Subnet: %s\n", sub)
	fmt.Printf("  Connect: lxcctl exec %s -- <command>\n", name)

	return nil
}

// waitForIP polls until the container reports an address or the
// timeout elapses. Lookup failures other than a missing address abort
// the wait immediately.
func waitForIP(ctx context.Context, c *container.Container, timeout, interval time.Duration) (netip.Addr, error) {
	deadline := time.Now().Add(timeout)
	for {
		ip, err := c.IP(ctx)
		if err == nil {
			return ip, nil
		}

		var noAddr *container.NoAddressError
		if !errors.As(err, &noAddr) {
			return netip.Addr{}, err
		}
		if !time.Now().Before(deadline) {
			return netip.Addr{}, err
		}

		select {
		case <-ctx.Done():
			return netip.Addr{}, ctx.Err()
		case <-time.After(interval):
		}
	}
}
