package main

import (
	"os"

	"github.com/magabrotheeeer/subscription-tracker/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.Open).Execute(); err != nil {
		os.Exit(1)
	}
}
