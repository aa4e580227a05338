// Package worksheet turns the s-expression tree of a KiCad worksheet
// template into drawing primitives.
package worksheet

import (
	"fmt"
	"strconv"
)

// Anchor names the page corner a coordinate is measured from.
type Anchor string

// Page corners, as spelled in worksheet files.
const (
	LeftTop     Anchor = "ltcorner"
	LeftBottom  Anchor = "lbcorner"
	RightTop    Anchor = "rtcorner"
	RightBottom Anchor = "rbcorner"
)

// DefaultAnchor is used by coordinates that do not name a corner.
const DefaultAnchor = RightBottom

func (a Anchor) valid() bool {
	switch a {
	case LeftTop, LeftBottom, RightTop, RightBottom:
		return true
	}
	return false
}

// Point is a position relative to one of the page corners, in millimetres.
type Point struct {
	X, Y   float64
	Anchor Anchor
}

// Add returns p moved by dx, dy within the same anchor frame.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Anchor: p.Anchor}
}

// Repeat describes how many copies of an item are drawn and how far apart.
type Repeat struct {
	Count     int
	IncrX     float64
	IncrY     float64
	IncrLabel int
}

// Times returns the number of copies to draw, at least one.
func (r Repeat) Times() int {
	if r.Count < 1 {
		return 1
	}
	return r.Count
}

// PageOption restricts an item to some pages of a multi-sheet drawing.
type PageOption string

// Page options.
const (
	AllPages   PageOption = ""
	Page1Only  PageOption = "page1only"
	NotOnPage1 PageOption = "notonpage1"
)

// OnPage reports whether an item with this option is drawn on the given
// page number, starting at 1.
func (o PageOption) OnPage(page int) bool {
	switch o {
	case Page1Only:
		return page == 1
	case NotOnPage1:
		return page != 1
	}
	return true
}

// Justify is the horizontal alignment of a text.
type Justify string

// Horizontal alignments.
const (
	JustifyLeft   Justify = "left"
	JustifyCenter Justify = "center"
	JustifyRight  Justify = "right"
)

// Primitive is one drawing instruction of a worksheet: a *Setup, *Line,
// *Rect, *Text or *Polygon.
type Primitive interface {
	primitive()
}

// Setup holds the page wide defaults of a worksheet. Entries missing from the
// file keep the values of DefaultSetup.
type Setup struct {
	TextWidth     float64
	TextHeight    float64
	LineWidth     float64
	TextLineWidth float64

	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	BottomMargin float64

	// PageWidth and PageHeight are set by an optional (size W H) entry.
	PageWidth  float64
	PageHeight float64
}

// HasPageSize reports whether the setup declares the page dimensions.
func (s *Setup) HasPageSize() bool {
	return s.PageWidth > 0 && s.PageHeight > 0
}

// DefaultSetup returns the values KiCad uses when a worksheet has no setup.
func DefaultSetup() Setup {
	return Setup{
		TextWidth:     1.5,
		TextHeight:    1.5,
		LineWidth:     0.15,
		TextLineWidth: 0.15,

		LeftMargin:   10,
		RightMargin:  10,
		TopMargin:    10,
		BottomMargin: 10,
	}
}

// Line is a straight segment.
type Line struct {
	Name      string
	Start     Point
	End       Point
	LineWidth float64
	Repeat    Repeat
	Option    PageOption
}

// Rect is an unfilled rectangle given by two opposite corners.
type Rect struct {
	Name      string
	Start     Point
	End       Point
	LineWidth float64
	Repeat    Repeat
	Option    PageOption
}

// Text is a title block text. Text may hold placeholders such as "%T" which
// are kept literally.
type Text struct {
	Name    string
	Text    string
	Pos     Point
	Justify Justify
	Rotate  float64
	Bold    bool
	Italic  bool

	// FontWidth and FontHeight are zero when the setup default applies.
	FontWidth  float64
	FontHeight float64

	Repeat Repeat
	Option PageOption
}

// IsPlaceholder reports whether the text is a variable reference.
func (t *Text) IsPlaceholder() bool {
	return len(t.Text) > 1 && t.Text[0] == '%'
}

// Label returns the text drawn by the i-th copy of a repeated text. The label
// advances by IncrLabel on each copy, acting on its end. Trailing digits are
// counted up ("A1", "A2") and zero padded ones keep their width. Trailing
// letters advance with a carry ("Y", "Z", "AA"). Any other last character is
// shifted. Placeholders are never changed.
func (t *Text) Label(i int) string {
	step := i * t.Repeat.IncrLabel
	if step == 0 || t.Text == "" || t.IsPlaceholder() {
		return t.Text
	}

	r := []rune(t.Text)
	end := len(r)

	start := end
	for start > 0 && r[start-1] >= '0' && r[start-1] <= '9' {
		start--
	}
	if start < end {
		n, err := strconv.Atoi(string(r[start:]))
		if err != nil || n+step < 0 {
			return t.Text
		}
		width := 0
		if r[start] == '0' {
			width = end - start
		}
		return string(r[:start]) + fmt.Sprintf("%0*d", width, n+step)
	}

	switch last := r[end-1]; {
	case last >= 'A' && last <= 'Z':
		return advanceLetters(r, 'A', step, t.Text)
	case last >= 'a' && last <= 'z':
		return advanceLetters(r, 'a', step, t.Text)
	default:
		r[end-1] = last + rune(step)
		return string(r)
	}
}

// advanceLetters reads the trailing run of letters of r from base to base+25
// as a spreadsheet column number ("A" is 1, "AA" is 27) and adds step to it.
// It returns fallback when the result is not positive.
func advanceLetters(r []rune, base rune, step int, fallback string) string {
	start := len(r)
	for start > 0 && r[start-1] >= base && r[start-1] <= base+25 {
		start--
	}

	n := 0
	for _, c := range r[start:] {
		n = n*26 + int(c-base) + 1
	}
	n += step
	if n < 1 {
		return fallback
	}

	letters := []rune{}
	for ; n > 0; n = (n - 1) / 26 {
		letters = append([]rune{base + rune((n-1)%26)}, letters...)
	}
	return string(r[:start]) + string(letters)
}

// XY is a polygon vertex relative to the polygon position.
type XY struct {
	X, Y float64
}

// Polygon is a filled shape made of one or more outlines.
type Polygon struct {
	Name      string
	Pos       Point
	Rotate    float64
	LineWidth float64
	Outlines  [][]XY
	Repeat    Repeat
	Option    PageOption
}

func (*Setup) primitive()   {}
func (*Line) primitive()    {}
func (*Rect) primitive()    {}
func (*Text) primitive()    {}
func (*Polygon) primitive() {}

// Worksheet is the decoded content of a worksheet file, primitives in file
// order.
type Worksheet struct {
	Items []Primitive

	// Skipped lists the heads of the nodes that were not recognized.
	Skipped []string
}

// Setup returns the first setup of the worksheet or nil.
func (ws *Worksheet) Setup() *Setup {
	for _, item := range ws.Items {
		if s, ok := item.(*Setup); ok {
			return s
		}
	}
	return nil
}
