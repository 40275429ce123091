package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ipCmd = &cobra.Command{
	Use:   "ip <name>",
	Short: "Print a container's IP address",
	Args:  cobra.ExactArgs(1),
	RunE:  runIP,
}

func init() {
	rootCmd.AddCommand(ipCmd)
}

func runIP(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := context.Background()

	c, err := getContainer(name)
	if err != nil {
		return err
	}

	ip, err := c.IP(ctx)
	if err != nil {
		return codedErr(name, err)
	}

	fmt.Println(ip)
	return nil
}
