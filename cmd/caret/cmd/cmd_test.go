package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	drifttest "github.com/go-drift/caret/pkg/testing"
)

const loginScene = `version: v1
scene:
  touch: true
textInputs:
  - name: user
    x: 150
    y: 100
    maxLength: 5
script:
  - action: press
    x: 150
    y: 100
  - action: type
    text: abcdef
  - action: key
    key: Backspace
  - action: key
    key: ArrowLeft
  - action: type
    text: X
`

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute_Replay(t *testing.T) {
	out := captureOutput(t)
	path := writeScene(t, loginScene)
	dir := filepath.Dir(path)
	pngPath := filepath.Join(dir, "frame.png")
	snapPath := filepath.Join(dir, "frame.json")

	err := Execute([]string{"replay", path, "--png", pngPath, "--snapshot=" + snapPath})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	want := "user: \"abcXd\" caret=4 (focused)\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	file, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 600 {
		t.Errorf("frame size = %v", b)
	}

	snap, err := drifttest.LoadSnapshot(snapPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 5 || snap.Nodes[3].Text != "abcXd" {
		t.Errorf("snapshot nodes = %+v", snap.Nodes)
	}
}

func TestExecute_Check(t *testing.T) {
	out := captureOutput(t)
	good := writeScene(t, loginScene)
	bad := writeScene(t, "version: v9")

	if err := Execute([]string{"check", good}); err != nil {
		t.Fatalf("check good: %v", err)
	}
	if !strings.HasPrefix(out.String(), "ok   ") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := Execute([]string{"check", good, bad}); err == nil {
		t.Fatal("check accepted an invalid file")
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Errorf("output = %q", out.String())
	}
}

func TestExecute_Misc(t *testing.T) {
	out := captureOutput(t)

	if err := Execute([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}

	out.Reset()
	if err := Execute(nil); err != nil || !strings.Contains(out.String(), "Commands:") {
		t.Errorf("help: err=%v output=%q", err, out.String())
	}

	if err := Execute([]string{"nope"}); err == nil {
		t.Error("unknown command accepted")
	}
}

func TestParseReplayArgs(t *testing.T) {
	tests := []struct {
		args    []string
		want    replayOptions
		wantErr bool
	}{
		{args: []string{"a.yaml"}, want: replayOptions{scenePath: "a.yaml"}},
		{args: []string{"--png", "o.png", "a.yaml"}, want: replayOptions{scenePath: "a.yaml", pngPath: "o.png"}},
		{args: []string{"a.yaml", "--snapshot=s.json"}, want: replayOptions{scenePath: "a.yaml", snapshotPath: "s.json"}},
		{args: nil, wantErr: true},
		{args: []string{"a.yaml", "b.yaml"}, wantErr: true},
		{args: []string{"a.yaml", "--png"}, wantErr: true},
		{args: []string{"a.yaml", "--fast"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseReplayArgs(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseReplayArgs(%v) error = %v", tt.args, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseReplayArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
		}
	}
}
