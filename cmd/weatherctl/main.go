package main

import (
	"fmt"
	"os"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
