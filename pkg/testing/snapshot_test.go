package testing

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/caret/pkg/rendering"
)

type fakeT struct {
	errors []string
	fatals []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func sampleLayer() (*rendering.Layer, rendering.TextNode) {
	layer := rendering.NewLayer()
	box := layer.AddRect(rendering.RectFromLTWH(10, 20, 300, 40), rendering.Hex(0xf0f0f0))
	box.SetStroke(rendering.Hex(0x4e342e), 2)
	text := layer.AddText(rendering.Offset{X: 20, Y: 31}, "Enter text...", rendering.TextStyle{
		Color:      rendering.Hex(0x999999),
		FontFamily: "Go",
		FontSize:   18,
		FontStyle:  rendering.FontStyleItalic,
	})
	return layer, text
}

func TestCaptureLayer(t *testing.T) {
	layer, _ := sampleLayer()
	snap := CaptureLayer(layer)

	if len(snap.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(snap.Nodes))
	}
	rect := snap.Nodes[0]
	if rect.Type != "rect" || rect.Size != [2]float64{300, 40} || rect.Fill != "#fff0f0f0" {
		t.Errorf("rect node = %+v", rect)
	}
	if rect.Stroke != "#ff4e342e/2" {
		t.Errorf("rect stroke = %q", rect.Stroke)
	}
	text := snap.Nodes[1]
	if text.Type != "text" || text.Font != "Go 18px italic" || text.Text != "Enter text..." {
		t.Errorf("text node = %+v", text)
	}
}

func TestSnapshot_MatchesFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	path := filepath.Join(t.TempDir(), "layer.snapshot.json")
	layer, text := sampleLayer()

	if err := CaptureLayer(layer).UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	same := &fakeT{}
	CaptureLayer(layer).MatchesFile(same, path)
	if len(same.errors)+len(same.fatals) != 0 {
		t.Errorf("unchanged layer reported %v %v", same.errors, same.fatals)
	}

	text.SetText("Hi")
	changed := &fakeT{}
	CaptureLayer(layer).MatchesFile(changed, path)
	if len(changed.errors) != 1 || !strings.Contains(changed.errors[0], "Hi") {
		t.Errorf("changed layer reported %v", changed.errors)
	}

	missing := &fakeT{}
	CaptureLayer(layer).MatchesFile(missing, filepath.Join(t.TempDir(), "nope.json"))
	if len(missing.fatals) != 1 || !strings.Contains(missing.fatals[0], UpdateSnapshotsEnv) {
		t.Errorf("missing file reported %v", missing.fatals)
	}
}
