package cmd

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/go-drift/caret/pkg/config"
	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/scene"
	drifttest "github.com/go-drift/caret/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a scene's script",
		Long: `Build a scene file's widgets, replay its script and print the value of
every text input.

Time only moves on wait steps. Native keyboard events are delivered by a
simulated bridge that reports the device named by scene.touch.

Flags:
  --png PATH        Write the final frame as a PNG image
  --snapshot PATH   Write the final frame's nodes as JSON`,
		Usage: "caret replay <scene.yaml> [--png PATH] [--snapshot PATH]",
		Run:   runReplay,
	})
}

type replayOptions struct {
	scenePath    string
	pngPath      string
	snapshotPath string
}

func parseReplayArgs(args []string) (replayOptions, error) {
	var opts replayOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--png" || arg == "--snapshot":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a file path", arg)
			}
			if arg == "--png" {
				opts.pngPath = args[i+1]
			} else {
				opts.snapshotPath = args[i+1]
			}
			i++
		case strings.HasPrefix(arg, "--png="):
			opts.pngPath = strings.TrimPrefix(arg, "--png=")
		case strings.HasPrefix(arg, "--snapshot="):
			opts.snapshotPath = strings.TrimPrefix(arg, "--snapshot=")
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag %q", arg)
		default:
			if opts.scenePath != "" {
				return opts, fmt.Errorf("replay takes one scene file")
			}
			opts.scenePath = arg
		}
	}
	if opts.scenePath == "" {
		return opts, fmt.Errorf("replay requires a scene file")
	}
	return opts, nil
}

func runReplay(args []string) error {
	opts, err := parseReplayArgs(args)
	if err != nil {
		return err
	}

	f, err := config.Load(opts.scenePath)
	if err != nil {
		return err
	}

	fonts, err := rendering.NewFontManager()
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}
	bridge := drifttest.NewRecordingBridge(platform.Capabilities{Touch: f.Scene.Touch})
	clock := drifttest.NewFakeClock()

	sceneOpts := f.SceneOptions()
	sceneOpts.Fonts = fonts
	sceneOpts.Bridge = bridge
	sceneOpts.Clock = clock
	sc := scene.New(sceneOpts)
	defer sc.Destroy()

	built, err := f.Build(sc)
	if err != nil {
		return err
	}

	player := &config.Player{
		Scene:   sc,
		Clock:   clock,
		Native:  bridge,
		ViewIDs: make(map[string]int64),
	}
	if ids := bridge.ViewIDs(); len(ids) == len(f.TextInputs) {
		for i, in := range f.TextInputs {
			player.ViewIDs[in.Name] = ids[i]
		}
	} else {
		errors.Logger().Warn("native fields missing; native steps will fail",
			"fields", len(ids), "inputs", len(f.TextInputs))
	}

	if err := player.Play(f.Script); err != nil {
		return err
	}

	for i, box := range built.TextInputs {
		name := box.Name()
		if name == "" {
			name = fmt.Sprintf("textInputs[%d]", i)
		}
		state := box.EditState()
		focused := ""
		if box.IsFocused() {
			focused = " (focused)"
		}
		fmt.Fprintf(stdout, "%s: %q caret=%d%s\n", name, state.Value, state.Caret, focused)
	}

	if opts.pngPath != "" {
		if err := writePNG(sc, opts.pngPath); err != nil {
			return err
		}
	}
	if opts.snapshotPath != "" {
		data, err := drifttest.CaptureLayer(sc.Layer()).Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := os.WriteFile(opts.snapshotPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return nil
}

func writePNG(sc *scene.Scene, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(out, sc.Render()); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return out.Close()
}
