package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the caret version and build time.",
		Usage: "caret version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Fprintf(stdout, "caret version %s (built %s)\n", Version, BuildTime)
	return nil
}
