package main

import (
	"os"

	"github.com/cloud-ru/mcp-compound-go/cmd/compound/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
