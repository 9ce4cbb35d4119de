package main

import (
	"os"

	"phantomlink/cmd/phantomlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
