package main

import (
	"context"
	"fmt"
	"os"

	"github.com/platinummonkey/apiman/pkg/cli"
)

func main() {
	rootCmd := cli.NewRootCommand(cli.StdStreams())

	if err := rootCmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
