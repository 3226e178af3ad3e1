package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/go-drift/caret/pkg/platform"
	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/scene"
	drifttest "github.com/go-drift/caret/pkg/testing"
)

func buildSample(t *testing.T) (*File, *scene.Scene, *drifttest.RecordingBridge, *drifttest.FakeClock, *Built) {
	t.Helper()
	f, err := Parse([]byte(sampleScene))
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := rendering.NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	bridge := drifttest.NewRecordingBridge(platform.Capabilities{Touch: f.Scene.Touch})
	clock := drifttest.NewFakeClock()
	opts := f.SceneOptions()
	opts.Bridge, opts.Clock, opts.Fonts = bridge, clock, fonts
	sc := scene.New(opts)
	t.Cleanup(sc.Destroy)

	built, err := f.Build(sc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return f, sc, bridge, clock, built
}

func TestBuild(t *testing.T) {
	_, sc, _, _, built := buildSample(t)

	if len(built.TextInputs) != 2 || len(built.Buttons) != 1 || len(built.Labels) != 1 {
		t.Fatalf("built %d inputs, %d buttons, %d labels",
			len(built.TextInputs), len(built.Buttons), len(built.Labels))
	}
	if sc.Object("user") != built.TextInputs[0] || sc.Object("title") != built.Labels[0] {
		t.Error("widgets not registered by name")
	}
	if got := built.Buttons[0].Bounds(); got != rendering.RectFromCenter(160, 240, 160, 48) {
		t.Errorf("button bounds = %v", got)
	}
	if sc.Size() != (rendering.Size{Width: 320, Height: 480}) {
		t.Errorf("scene size = %v", sc.Size())
	}
}

func TestPlayer_Replay(t *testing.T) {
	f, sc, bridge, clock, built := buildSample(t)
	user, pin := built.TextInputs[0], built.TextInputs[1]

	ids := bridge.ViewIDs()
	p := &Player{
		Scene:   sc,
		Clock:   clock,
		Native:  bridge,
		ViewIDs: map[string]int64{"user": ids[0], "pin": ids[1]},
	}
	if err := p.Play(f.Script); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if user.Value() != "ada" || !user.IsFocused() {
		t.Errorf("user = (%q, focused %v)", user.Value(), user.IsFocused())
	}
	if pin.Value() != "1234" {
		t.Errorf("pin = %q, want 1234", pin.Value())
	}
}

func TestPlayer_Errors(t *testing.T) {
	_, sc, _, _, _ := buildSample(t)

	p := &Player{Scene: sc}
	if err := p.Play([]Step{{Action: ActionWait, Duration: 1}}); err == nil {
		t.Error("wait without a clock succeeded")
	}
	if err := p.Play([]Step{{Action: ActionNativeText, Target: "user"}}); err == nil {
		t.Error("native step without native events succeeded")
	}
}

func TestBuild_Fonts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f := &File{
		Version: "v1",
		Fonts:   []FontConfig{{Name: "Mono", Path: "mono.ttf"}},
		dir:     dir,
	}
	fonts, err := rendering.NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.LoadFonts(fonts); err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	if !fonts.HasFont("mono") {
		t.Error("font not registered")
	}

	f.Fonts = []FontConfig{{Name: "Missing", Path: "missing.ttf"}}
	if err := f.LoadFonts(fonts); err == nil {
		t.Error("missing font file loaded")
	}
}

func TestParseAccept(t *testing.T) {
	tests := []struct {
		rule string
		r    rune
		want bool
	}{
		{"", 'a', true},
		{"default", 'é', false},
		{"all", 'é', true},
		{"only:01", '1', true},
		{"only:01", '2', false},
	}
	for _, tt := range tests {
		accept, err := parseAccept(tt.rule)
		if err != nil {
			t.Fatalf("parseAccept(%q): %v", tt.rule, err)
		}
		if accept(tt.r) != tt.want {
			t.Errorf("parseAccept(%q)(%q) = %v", tt.rule, tt.r, !tt.want)
		}
	}
	if _, err := parseAccept("only:"); err == nil {
		t.Error("empty only rule accepted")
	}
}
