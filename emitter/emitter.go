// Package emitter writes the primitives of a worksheet as an SVG document laid
// out the way the FreeCAD TechDraw workbench expects its templates: page size
// in millimetres and editable title block fields tagged with
// freecad:editable.
package emitter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/xiam/wks2svg/worksheet"
)

// FreeCADNamespace is the XML namespace of the freecad:editable attribute.
const FreeCADNamespace = "http://www.freecadweb.org/wiki/index.php?title=Svg_Namespace"

// Options control the layout of the emitted document.
type Options struct {
	// Page is used when the worksheet setup does not declare a page size.
	Page PageSize

	// PageNumber selects which page options are honored, starting at 1.
	PageNumber int

	// Decimals is the number of decimals written for coordinates, which are
	// in millimetres.
	Decimals int

	// StrokeScale converts line widths into points.
	StrokeScale float64

	// BaselineShift moves texts down by this fraction of their height.
	BaselineShift float64

	FontFamily string

	// Editable maps placeholders, such as "%T", to FreeCAD editable field
	// names.
	Editable map[string]string

	// Description is written in the <desc> element when not empty.
	Description string

	Logger *log.Logger
}

// DefaultEditable returns the placeholder to FreeCAD field mapping.
func DefaultEditable() map[string]string {
	return map[string]string{
		"%C0":   "Comment 1",
		"%C1":   "Comment 2",
		"%C2":   "Comment 3",
		"%C3":   "Comment 4",
		"%S/%N": "SheetNo",
		"%T":    "Title",
		"%Y":    "Organization",
		"%R":    "Revision",
		"%D":    "Date",
	}
}

// DefaultOptions returns the options used by the converter.
func DefaultOptions() Options {
	return Options{
		PageNumber:    1,
		Decimals:      4,
		StrokeScale:   0.75,
		BaselineShift: 0.35,
		FontFamily:    "osifont",
		Editable:      DefaultEditable(),
	}
}

// Stats summarizes an emitted document.
type Stats struct {
	// Elements is the number of drawing elements written.
	Elements int

	// Skipped is the number of primitives that were not drawn.
	Skipped int
}

// Emitter writes one SVG document.
type Emitter struct {
	out    *errWriter
	canvas *svg.SVG
	opts   Options
	log    *log.Logger

	setup  worksheet.Setup
	active *worksheet.Setup
	page   Page

	stats Stats
}

// New creates an emitter writing to w. A zero PageNumber, Decimals,
// StrokeScale or FontFamily takes its default value.
func New(w io.Writer, opts Options) *Emitter {
	def := DefaultOptions()
	if opts.PageNumber < 1 {
		opts.PageNumber = def.PageNumber
	}
	if opts.Decimals < 1 {
		opts.Decimals = def.Decimals
	}
	if opts.StrokeScale <= 0 {
		opts.StrokeScale = def.StrokeScale
	}
	if opts.FontFamily == "" {
		opts.FontFamily = def.FontFamily
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Decimals = opts.Decimals

	return &Emitter{
		out:    out,
		canvas: canvas,
		opts:   opts,
		log:    logger,
	}
}

// Emit writes the whole document for ws.
func (e *Emitter) Emit(ws *worksheet.Worksheet) (Stats, error) {
	e.stats = Stats{Skipped: len(ws.Skipped)}
	for _, head := range ws.Skipped {
		e.log.Printf("skipped unsupported node %q", head)
	}

	size := e.layout(ws)
	e.page = NewPage(size, e.setup)
	e.start(size)

	for _, item := range ws.Items {
		e.emit(item)
	}

	e.canvas.End()
	return e.stats, e.out.err
}

// Render returns the SVG document for ws.
func Render(ws *worksheet.Worksheet, opts Options) ([]byte, Stats, error) {
	var buf bytes.Buffer
	stats, err := New(&buf, opts).Emit(ws)
	if err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// layout picks the setup that governs the page: the first one found before
// any drawing primitive. It returns the page size.
func (e *Emitter) layout(ws *worksheet.Worksheet) PageSize {
	e.setup = worksheet.DefaultSetup()
	e.active = nil

	for _, item := range ws.Items {
		s, ok := item.(*worksheet.Setup)
		if !ok {
			break
		}
		if e.active == nil {
			e.setup, e.active = *s, s
		}
	}

	switch {
	case e.setup.HasPageSize():
		return PageSize{Width: e.setup.PageWidth, Height: e.setup.PageHeight}
	case !e.opts.Page.IsZero():
		return e.opts.Page
	}
	return DefaultPageSize
}

func (e *Emitter) start(size PageSize) {
	w, h := num(size.Width), num(size.Height)
	e.canvas.Startraw(
		fmt.Sprintf(` width="%smm"`, w),
		fmt.Sprintf(`height="%smm"`, h),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, w, h),
		fmt.Sprintf(`xmlns:freecad="%s"`, FreeCADNamespace),
	)
	if e.opts.Description != "" {
		e.canvas.Desc(e.opts.Description)
	}
}

func (e *Emitter) emit(item worksheet.Primitive) {
	switch v := item.(type) {
	case *worksheet.Setup:
		if v != e.active {
			e.log.Printf("setup found after drawing primitives, ignored")
		}
	case *worksheet.Line:
		if e.onPage(v.Option) {
			e.line(v)
		}
	case *worksheet.Rect:
		if e.onPage(v.Option) {
			e.rect(v)
		}
	case *worksheet.Text:
		if e.onPage(v.Option) {
			e.text(v)
		}
	case *worksheet.Polygon:
		if e.onPage(v.Option) {
			e.polygon(v)
		}
	default:
		e.stats.Skipped++
	}
}

func (e *Emitter) onPage(opt worksheet.PageOption) bool {
	if opt.OnPage(e.opts.PageNumber) {
		return true
	}
	e.stats.Skipped++
	return false
}

// inside reports whether the i-th copy of a repeated item is drawn. Copies
// other than the first are dropped once they leave the page margins.
func (e *Emitter) inside(i int, points ...worksheet.Point) bool {
	if i == 0 {
		return true
	}
	for _, p := range points {
		if !e.page.Contains(e.page.Transform(p)) {
			return false
		}
	}
	return true
}

func step(r worksheet.Repeat, i int) (float64, float64) {
	return float64(i) * r.IncrX, float64(i) * r.IncrY
}

func (e *Emitter) stroke(width float64) string {
	if width <= 0 {
		width = e.setup.LineWidth
	}
	w := width * e.opts.StrokeScale
	return fmt.Sprintf("stroke:black;stroke-width:%spt;stroke-linecap:round;stroke-linejoin:round", num(w))
}

func (e *Emitter) line(l *worksheet.Line) {
	style := e.stroke(l.LineWidth)

	for i := 0; i < l.Repeat.Times(); i++ {
		dx, dy := step(l.Repeat, i)
		start, end := l.Start.Add(dx, dy), l.End.Add(dx, dy)
		if !e.inside(i, start, end) {
			continue
		}

		x1, y1 := e.page.Transform(start)
		x2, y2 := e.page.Transform(end)
		e.canvas.Line(x1, y1, x2, y2, attrs(l.Name, i, style)...)
		e.stats.Elements++
	}
}

func (e *Emitter) rect(r *worksheet.Rect) {
	style := e.stroke(r.LineWidth) + ";fill:none"

	for i := 0; i < r.Repeat.Times(); i++ {
		dx, dy := step(r.Repeat, i)
		start, end := r.Start.Add(dx, dy), r.End.Add(dx, dy)
		if !e.inside(i, start, end) {
			continue
		}

		x1, y1 := e.page.Transform(start)
		x2, y2 := e.page.Transform(end)
		e.canvas.Rect(math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2-x1), math.Abs(y2-y1), attrs(r.Name, i, style)...)
		e.stats.Elements++
	}
}

var textAnchors = map[worksheet.Justify]string{
	worksheet.JustifyLeft:   "start",
	worksheet.JustifyCenter: "middle",
	worksheet.JustifyRight:  "end",
}

func (e *Emitter) textStyle(t *worksheet.Text, height float64) string {
	anchor, ok := textAnchors[t.Justify]
	if !ok {
		anchor = "start"
	}

	style := fmt.Sprintf("font-size:%spt;text-anchor:%s;fill:black;font-family:%s",
		num(height), anchor, e.opts.FontFamily)
	if t.Bold {
		style += ";font-weight:bold"
	}
	if t.Italic {
		style += ";font-style:italic"
	}
	return style
}

func (e *Emitter) text(t *worksheet.Text) {
	height := t.FontHeight
	if height <= 0 {
		height = e.setup.TextHeight
	}
	style := e.textStyle(t, height)
	shift := num(e.opts.BaselineShift * height)

	for i := 0; i < t.Repeat.Times(); i++ {
		dx, dy := step(t.Repeat, i)
		pos := t.Pos.Add(dx, dy)
		if !e.inside(i, pos) {
			continue
		}

		x, y := e.page.Transform(pos)

		transform := fmt.Sprintf("translate(0,%s)", shift)
		if t.Rotate != 0 {
			transform = fmt.Sprintf("rotate(%s,%s,%s) %s", num(-t.Rotate), num(x), num(y), transform)
		}

		label := t.Label(i)
		extra := attrs(t.Name, i, fmt.Sprintf(`transform="%s"`, transform), style)
		if t.IsPlaceholder() {
			e.editable(x, y, label, extra)
		} else {
			e.canvas.Text(x, y, label, extra...)
		}
		e.stats.Elements++
	}
}

// editable writes a text whose content is a placeholder. The placeholder is
// kept literally inside a tspan, FreeCAD replaces it with the field value.
func (e *Emitter) editable(x, y float64, text string, extra []string) {
	if field, ok := e.opts.Editable[text]; ok {
		extra = append([]string{fmt.Sprintf(`freecad:editable="%s"`, escape(field))}, extra...)
	}

	e.canvas.Textspan(x, y, "", extra...)
	e.canvas.Span(text, "fill:black")
	e.canvas.TextEnd()
}

func (e *Emitter) polygon(p *worksheet.Polygon) {
	style := "fill:black;" + e.stroke(p.LineWidth)

	var rotate string
	if p.Rotate != 0 {
		rotate = fmt.Sprintf(`transform="rotate(%s)"`, num(-p.Rotate))
	}

	for i := 0; i < p.Repeat.Times(); i++ {
		dx, dy := step(p.Repeat, i)
		pos := p.Pos.Add(dx, dy)
		if !e.inside(i, pos) {
			continue
		}

		px, py := e.page.Transform(pos)
		e.canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", num(px), num(py)))
		for j, outline := range p.Outlines {
			xs := make([]float64, len(outline))
			ys := make([]float64, len(outline))
			for k, pt := range outline {
				xs[k], ys[k] = pt.X, pt.Y
			}

			name := p.Name
			if j > 0 && name != "" {
				name += "_" + strconv.Itoa(j)
			}
			e.canvas.Polygon(xs, ys, attrs(name, i, rotate, style)...)
			e.stats.Elements++
		}
		e.canvas.Gend()
	}
}

// attrs returns the id of the i-th copy of an item followed by the given
// attributes, empty ones left out.
func attrs(name string, i int, extra ...string) []string {
	out := make([]string, 0, len(extra)+1)
	if name != "" {
		if i > 0 {
			name += "_" + strconv.Itoa(i)
		}
		out = append(out, fmt.Sprintf(`id="%s"`, escape(name)))
	}
	for _, a := range extra {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// escape quotes an attribute value, svgo writes raw attributes verbatim.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// num formats v with at most four decimals.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
