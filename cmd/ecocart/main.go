package main

import (
	"os"

	"github.com/francescabuggio/ecocart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
