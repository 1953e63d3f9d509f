package main

import (
	"fmt"
	"os"

	"github.com/saravenpi/murmur/cmd"
)

const version = "1.0.0"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
