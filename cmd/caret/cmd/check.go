package cmd

import (
	"fmt"

	"github.com/go-drift/caret/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate a scene file",
		Long: `Validate a scene file without running it.

Checks the schema version, widget names, colors, accept rules and the
script's actions and targets.`,
		Usage: "caret check <scene.yaml>...",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("check requires at least one scene file")
	}
	var failed int
	for _, path := range args {
		f, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s\n     %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%d text inputs, %d buttons, %d labels, %d steps)\n",
			path, len(f.TextInputs), len(f.Buttons), len(f.Labels), len(f.Script))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scene files invalid", failed, len(args))
	}
	return nil
}
