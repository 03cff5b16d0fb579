package main

import (
	"fmt"
	"os"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
