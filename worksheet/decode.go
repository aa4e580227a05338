package worksheet

import (
	"errors"
	"strings"

	"github.com/xiam/wks2svg/ast"
)

// ErrNoTree is returned by Decode when given a nil or value node.
var ErrNoTree = errors.New("worksheet: root must be a list")

// Heads of the lists that hold the whole worksheet.
var containers = map[string]bool{
	"page_layout": true,
	"kicad_wks":   true,
}

// Container metadata, neither drawn nor reported as skipped.
var metadata = map[string]bool{
	"version":           true,
	"generator":         true,
	"generator_version": true,
}

type decoder func(n *ast.Node) (Primitive, bool)

var decoders = map[string]decoder{
	"setup":   decodeSetup,
	"line":    decodeLine,
	"rect":    decodeRect,
	"tbtext":  decodeText,
	"polygon": decodePolygon,
}

// Decode walks the tree top-down and collects the primitives it recognizes.
// Unknown or incomplete nodes are skipped and reported in Skipped.
func Decode(root *ast.Node) (*Worksheet, error) {
	if root == nil || !root.IsVector() {
		return nil, ErrNoTree
	}

	ws := &Worksheet{}

	// The document root has no head, its children are the top-level forms.
	if root.Token() == nil {
		for _, n := range root.List() {
			ws.decode(n)
		}
		return ws, nil
	}

	ws.decode(root)
	return ws, nil
}

func (ws *Worksheet) decode(n *ast.Node) {
	if n.IsValue() {
		ws.Skipped = append(ws.Skipped, n.Encode())
		return
	}

	head := n.Head()
	switch {
	case containers[head]:
		for _, child := range n.Args() {
			ws.decode(child)
		}
		return
	case metadata[head]:
		return
	}

	if fn, ok := decoders[head]; ok {
		if item, ok := fn(n); ok {
			ws.Items = append(ws.Items, item)
			return
		}
	}

	ws.Skipped = append(ws.Skipped, head)
}

// number returns the i-th child of n as a number.
func number(n *ast.Node, i int) (float64, bool) {
	child := n.Child(i)
	if child == nil {
		return 0, false
	}
	return child.Float()
}

func integer(n *ast.Node, i int) (int, bool) {
	child := n.Child(i)
	if child == nil {
		return 0, false
	}
	v, ok := child.Int()
	return int(v), ok
}

// decodePoint reads "(start X Y [corner])".
func decodePoint(n *ast.Node) (Point, bool) {
	x, ok := number(n, 1)
	if !ok {
		return Point{}, false
	}
	y, ok := number(n, 2)
	if !ok {
		return Point{}, false
	}

	p := Point{X: x, Y: y, Anchor: DefaultAnchor}
	if corner := n.Child(3); corner != nil {
		if a := Anchor(corner.Text()); a.valid() {
			p.Anchor = a
		}
	}
	return p, true
}

func decodeName(n *ast.Node) string {
	if child := n.Child(1); child != nil {
		return child.Text()
	}
	return ""
}

// decodeCommon reads the entries shared by every drawable item. It returns
// false when the entry is not one of them.
func decodeCommon(n *ast.Node, name *string, rep *Repeat, opt *PageOption) bool {
	switch n.Head() {
	case "name":
		*name = decodeName(n)
	case "repeat":
		rep.Count, _ = integer(n, 1)
	case "incrx":
		rep.IncrX, _ = number(n, 1)
	case "incry":
		rep.IncrY, _ = number(n, 1)
	case "incrlabel":
		rep.IncrLabel, _ = integer(n, 1)
	case "option":
		for _, arg := range n.Args() {
			switch o := PageOption(arg.Text()); o {
			case Page1Only, NotOnPage1:
				*opt = o
			}
		}
	case "comment":
		// ignored
	default:
		return false
	}
	return true
}

func decodeSetup(n *ast.Node) (Primitive, bool) {
	s := DefaultSetup()

	for _, arg := range n.Args() {
		if !arg.IsVector() {
			continue
		}
		v, _ := number(arg, 1)
		switch arg.Head() {
		case "textsize":
			s.TextWidth = v
			s.TextHeight, _ = number(arg, 2)
		case "linewidth":
			s.LineWidth = v
		case "textlinewidth":
			s.TextLineWidth = v
		case "left_margin":
			s.LeftMargin = v
		case "right_margin":
			s.RightMargin = v
		case "top_margin":
			s.TopMargin = v
		case "bottom_margin":
			s.BottomMargin = v
		case "size":
			s.PageWidth = v
			s.PageHeight, _ = number(arg, 2)
		}
	}

	return &s, true
}

// decodeSegment reads the fields shared by lines and rectangles.
func decodeSegment(n *ast.Node) (name string, start, end Point, width float64, rep Repeat, opt PageOption, ok bool) {
	var hasStart, hasEnd bool

	for _, arg := range n.Args() {
		if !arg.IsVector() || decodeCommon(arg, &name, &rep, &opt) {
			continue
		}
		switch arg.Head() {
		case "start":
			start, hasStart = decodePoint(arg)
		case "end":
			end, hasEnd = decodePoint(arg)
		case "linewidth":
			width, _ = number(arg, 1)
		}
	}

	return name, start, end, width, rep, opt, hasStart && hasEnd
}

func decodeLine(n *ast.Node) (Primitive, bool) {
	name, start, end, width, rep, opt, ok := decodeSegment(n)
	if !ok {
		return nil, false
	}
	return &Line{Name: name, Start: start, End: end, LineWidth: width, Repeat: rep, Option: opt}, true
}

func decodeRect(n *ast.Node) (Primitive, bool) {
	name, start, end, width, rep, opt, ok := decodeSegment(n)
	if !ok {
		return nil, false
	}
	return &Rect{Name: name, Start: start, End: end, LineWidth: width, Repeat: rep, Option: opt}, true
}

func decodeText(n *ast.Node) (Primitive, bool) {
	t := &Text{
		Pos:     Point{Anchor: DefaultAnchor},
		Justify: JustifyLeft,
		Repeat:  Repeat{IncrLabel: 1},
	}

	args := n.Args()

	// The text is every value before the first list, normally a single
	// quoted string.
	words := []string{}
	for len(args) > 0 && args[0].IsValue() {
		words = append(words, args[0].Text())
		args = args[1:]
	}
	t.Text = strings.Join(words, " ")

	for _, arg := range args {
		if !arg.IsVector() || decodeCommon(arg, &t.Name, &t.Repeat, &t.Option) {
			continue
		}
		switch arg.Head() {
		case "pos":
			if p, ok := decodePoint(arg); ok {
				t.Pos = p
			}
		case "justify":
			for _, j := range arg.Args() {
				switch v := Justify(j.Text()); v {
				case JustifyLeft, JustifyCenter, JustifyRight:
					t.Justify = v
				}
			}
		case "rotate":
			t.Rotate, _ = number(arg, 1)
		case "font":
			decodeFont(arg, t)
		}
	}

	return t, true
}

func decodeFont(n *ast.Node, t *Text) {
	for _, arg := range n.Args() {
		if arg.IsValue() {
			switch arg.Text() {
			case "bold":
				t.Bold = true
			case "italic":
				t.Italic = true
			}
			continue
		}
		if arg.Head() == "size" {
			t.FontWidth, _ = number(arg, 1)
			t.FontHeight, _ = number(arg, 2)
		}
	}
}

func decodePolygon(n *ast.Node) (Primitive, bool) {
	p := &Polygon{
		Pos: Point{Anchor: DefaultAnchor},
	}

	for _, arg := range n.Args() {
		if !arg.IsVector() || decodeCommon(arg, &p.Name, &p.Repeat, &p.Option) {
			continue
		}
		switch arg.Head() {
		case "pos":
			if pos, ok := decodePoint(arg); ok {
				p.Pos = pos
			}
		case "rotate":
			p.Rotate, _ = number(arg, 1)
		case "linewidth":
			p.LineWidth, _ = number(arg, 1)
		case "pts":
			if outline := decodeOutline(arg); len(outline) > 0 {
				p.Outlines = append(p.Outlines, outline)
			}
		}
	}

	if len(p.Outlines) == 0 {
		return nil, false
	}
	return p, true
}

// decodeOutline reads "(pts (xy X Y) ...)".
func decodeOutline(n *ast.Node) []XY {
	outline := []XY{}
	for _, arg := range n.Args() {
		if arg.Head() != "xy" {
			continue
		}
		x, okX := number(arg, 1)
		y, okY := number(arg, 2)
		if okX && okY {
			outline = append(outline, XY{X: x, Y: y})
		}
	}
	return outline
}
