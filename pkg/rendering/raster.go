package rendering

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Render rasterizes the visible nodes of the layer onto dst in draw order.
// Corner radii are not rasterized.
func (l *Layer) Render(dst draw.Image, fonts *FontManager) {
	for _, n := range l.nodes {
		if !n.Visible() || n.Alpha() <= 0 {
			continue
		}
		switch node := n.(type) {
		case *rectNode:
			renderRect(dst, node)
		case *textNode:
			if fonts != nil {
				renderText(dst, node, fonts)
			}
		}
	}
}

func renderRect(dst draw.Image, n *rectNode) {
	b := n.Bounds()
	r := pixelRect(b)
	if n.fill.Alpha() > 0 {
		draw.Draw(dst, r, image.NewUniform(n.fill.NRGBA(n.alpha)), image.Point{}, draw.Over)
	}
	if n.strokeWidth <= 0 || n.stroke.Alpha() == 0 {
		return
	}
	w := int(math.Max(1, math.Round(n.strokeWidth)))
	src := image.NewUniform(n.stroke.NRGBA(n.alpha))
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w),
		image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}

func renderText(dst draw.Image, n *textNode, fonts *FontManager) {
	if n.text == "" {
		return
	}
	fonts.mu.Lock()
	defer fonts.mu.Unlock()
	face, err := fonts.faceLocked(n.style)
	if err != nil {
		return
	}
	ascent := face.Metrics().Ascent
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(n.style.Color.NRGBA(n.alpha)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(n.position.X * 64)),
			Y: fixed.Int26_6(math.Round(n.position.Y*64)) + ascent,
		},
	}
	d.DrawString(n.text)
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Left)),
		int(math.Round(r.Top)),
		int(math.Round(r.Right)),
		int(math.Round(r.Bottom)),
	)
}
