package rendering

import (
	"image"
	"testing"
)

func TestLayer_AddRemove(t *testing.T) {
	l := NewLayer()
	r := l.AddRect(RectFromLTWH(10, 20, 30, 40), Hex(0xf0f0f0))
	txt := l.AddText(Offset{X: 12, Y: 22}, "hi", TextStyle{})

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if got := r.Bounds(); got != RectFromLTWH(10, 20, 30, 40) {
		t.Errorf("Bounds() = %+v", got)
	}

	l.Remove(r)
	l.Remove(r)
	if l.Len() != 1 || l.Nodes()[0] != Node(txt) {
		t.Errorf("after Remove, nodes = %v", l.Nodes())
	}
}

func TestLayer_RenderFillsVisibleRects(t *testing.T) {
	l := NewLayer()
	l.AddRect(RectFromLTWH(0, 0, 10, 10), ColorBlack)
	hidden := l.AddRect(RectFromLTWH(10, 0, 10, 10), ColorBlack)
	hidden.SetVisible(false)

	dst := image.NewRGBA(image.Rect(0, 0, 20, 10))
	l.Render(dst, nil)

	if _, _, _, a := dst.At(5, 5).RGBA(); a == 0 {
		t.Error("visible rect was not drawn")
	}
	if _, _, _, a := dst.At(15, 5).RGBA(); a != 0 {
		t.Error("hidden rect was drawn")
	}
}

func TestLayer_RenderText(t *testing.T) {
	fonts, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	l := NewLayer()
	l.AddText(Offset{X: 2, Y: 2}, "W", TextStyle{FontSize: 24, Color: ColorBlack})

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	l.Render(dst, fonts)

	inked := false
	for y := 0; y < 40 && !inked; y++ {
		for x := 0; x < 40; x++ {
			if _, _, _, a := dst.At(x, y).RGBA(); a != 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("text rendered no pixels")
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromCenter(80, 150, 250, 50)
	tests := []struct {
		x, y float64
		want bool
	}{
		{80, 150, true},
		{-45, 125, true},
		{205, 175, true},
		{206, 150, false},
		{80, 124, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#999999", Color(0xFF999999), false},
		{"#333", Color(0xFF333333), false},
		{"0xf0f0f0", Color(0xFFF0F0F0), false},
		{"#33000000", Color(0x33000000), false},
		{"#12345", 0, true},
		{"nope", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestColorNRGBAScalesAlpha(t *testing.T) {
	c := Color(0xFF000000).NRGBA(0.2)
	if c.A != 51 {
		t.Errorf("alpha = %d, want 51", c.A)
	}
}
