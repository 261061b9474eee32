// Command todocal is a todo list with a calendar view.
package main

import (
	"os"

	"github.com/nhle/todocal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
