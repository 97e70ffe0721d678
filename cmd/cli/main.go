package main

import (
	"fmt"
	"io"
	"os"

	"github.com/superhero/locator/internal/cli"
)

// main is the entrypoint for the locator command.
func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the command logic for easier testing.
func run(outW io.Writer, args []string) error {
	root := cli.NewRootCommand(outW)
	root.SetArgs(args)
	return root.Execute()
}
