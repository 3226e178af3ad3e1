package rendering

// Node is a drawable object owned by a Surface.
type Node interface {
	Position() Offset
	SetPosition(Offset)
	Visible() bool
	SetVisible(bool)
	Alpha() float64
	SetAlpha(float64)
}

// RectNode is a filled, optionally stroked rectangle. Its position is the
// top-left corner.
type RectNode interface {
	Node
	Size() Size
	SetSize(Size)
	Bounds() Rect
	Fill() Color
	SetFill(Color)
	Stroke() (Color, float64)
	SetStroke(color Color, width float64)
	CornerRadius() float64
	SetCornerRadius(float64)
}

// TextNode is a run of text. Its position is the top-left corner of the
// line box.
type TextNode interface {
	Node
	Text() string
	SetText(string)
	Style() TextStyle
	SetStyle(TextStyle)
}

// Surface creates and owns drawable nodes. Nodes are drawn in creation order.
// The surface has no notion of carets, selection or focus; widgets draw
// those themselves.
type Surface interface {
	AddRect(bounds Rect, fill Color) RectNode
	AddText(position Offset, text string, style TextStyle) TextNode
	Remove(node Node)
}

// Layer is an in-memory retained Surface. It can be inspected by tests and
// rasterized with Render.
type Layer struct {
	nodes []Node
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{}
}

// AddRect adds a rectangle node.
func (l *Layer) AddRect(bounds Rect, fill Color) RectNode {
	n := &rectNode{
		nodeBase: nodeBase{position: bounds.TopLeft(), visible: true, alpha: 1},
		size:     bounds.Size(),
		fill:     fill,
	}
	l.nodes = append(l.nodes, n)
	return n
}

// AddText adds a text node.
func (l *Layer) AddText(position Offset, text string, style TextStyle) TextNode {
	n := &textNode{
		nodeBase: nodeBase{position: position, visible: true, alpha: 1},
		text:     text,
		style:    style,
	}
	l.nodes = append(l.nodes, n)
	return n
}

// Remove detaches a node. Removing an unknown node is a no-op.
func (l *Layer) Remove(node Node) {
	for i, n := range l.nodes {
		if n == node {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return
		}
	}
}

// Nodes returns the nodes in draw order.
func (l *Layer) Nodes() []Node {
	out := make([]Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// Len returns the number of nodes on the layer.
func (l *Layer) Len() int {
	return len(l.nodes)
}

type nodeBase struct {
	position Offset
	visible  bool
	alpha    float64
}

func (n *nodeBase) Position() Offset       { return n.position }
func (n *nodeBase) SetPosition(p Offset)   { n.position = p }
func (n *nodeBase) Visible() bool          { return n.visible }
func (n *nodeBase) SetVisible(v bool)      { n.visible = v }
func (n *nodeBase) Alpha() float64         { return n.alpha }
func (n *nodeBase) SetAlpha(alpha float64) { n.alpha = alpha }

type rectNode struct {
	nodeBase
	size        Size
	fill        Color
	stroke      Color
	strokeWidth float64
	radius      float64
}

func (n *rectNode) Size() Size                { return n.size }
func (n *rectNode) SetSize(s Size)            { n.size = s }
func (n *rectNode) Fill() Color               { return n.fill }
func (n *rectNode) SetFill(c Color)           { n.fill = c }
func (n *rectNode) Stroke() (Color, float64)  { return n.stroke, n.strokeWidth }
func (n *rectNode) CornerRadius() float64     { return n.radius }
func (n *rectNode) SetCornerRadius(r float64) { n.radius = r }

func (n *rectNode) SetStroke(c Color, width float64) {
	n.stroke = c
	n.strokeWidth = width
}

func (n *rectNode) Bounds() Rect {
	return RectFromLTWH(n.position.X, n.position.Y, n.size.Width, n.size.Height)
}

type textNode struct {
	nodeBase
	text  string
	style TextStyle
}

func (n *textNode) Text() string         { return n.text }
func (n *textNode) SetText(s string)     { n.text = s }
func (n *textNode) Style() TextStyle     { return n.style }
func (n *textNode) SetStyle(s TextStyle) { n.style = s }
