package main

import (
	"os"

	"github.com/uoi-cloud/lxcctl/cmd"
	"github.com/uoi-cloud/lxcctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
