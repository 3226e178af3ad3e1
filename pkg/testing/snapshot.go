package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/caret/pkg/rendering"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "CARET_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the drawable nodes of a layer in draw order.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
}

// SnapshotNode is the serialized form of one rendering node.
type SnapshotNode struct {
	Type     string     `json:"type"`
	Position [2]float64 `json:"position"`
	Size     [2]float64 `json:"size"`
	Visible  bool       `json:"visible"`
	Alpha    float64    `json:"alpha"`
	Fill     string     `json:"fill,omitempty"`
	Stroke   string     `json:"stroke,omitempty"`
	Text     string     `json:"text,omitempty"`
	Font     string     `json:"font,omitempty"`
	Color    string     `json:"color,omitempty"`
}

// CaptureLayer snapshots every node on layer.
func CaptureLayer(layer *rendering.Layer) *Snapshot {
	snap := &Snapshot{Nodes: []SnapshotNode{}}
	for _, n := range layer.Nodes() {
		pos := n.Position()
		node := SnapshotNode{
			Position: [2]float64{round2(pos.X), round2(pos.Y)},
			Visible:  n.Visible(),
			Alpha:    round2(n.Alpha()),
		}
		switch v := n.(type) {
		case rendering.RectNode:
			node.Type = "rect"
			size := v.Size()
			node.Size = [2]float64{round2(size.Width), round2(size.Height)}
			node.Fill = serializeColor(v.Fill())
			if c, w := v.Stroke(); w > 0 {
				node.Stroke = fmt.Sprintf("%s/%g", serializeColor(c), round2(w))
			}
		case rendering.TextNode:
			node.Type = "text"
			node.Text = v.Text()
			style := v.Style()
			node.Font = fmt.Sprintf("%s %gpx", style.FontFamily, round2(style.FontSize))
			if style.FontStyle == rendering.FontStyleItalic {
				node.Font += " italic"
			}
			node.Color = serializeColor(style.Color)
		default:
			node.Type = fmt.Sprintf("%T", n)
		}
		snap.Nodes = append(snap.Nodes, node)
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When CARET_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff between other (expected) and this snapshot. Returns
// an empty string if they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

// Marshal encodes the snapshot as indented JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a golden file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func serializeColor(c rendering.Color) string {
	return fmt.Sprintf("#%08x", uint32(c))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
