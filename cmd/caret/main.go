// Command caret checks and replays text input scenes.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/caret/cmd/caret/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
