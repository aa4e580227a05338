package emitter

import (
	"github.com/xiam/wks2svg/worksheet"
)

// PageSize is the size of a sheet in millimetres.
type PageSize struct {
	Width  float64 `yaml:"width" mapstructure:"width"`
	Height float64 `yaml:"height" mapstructure:"height"`
}

// IsZero reports whether the size is unset.
func (s PageSize) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// DefaultPageSize is used when neither the worksheet nor the options give a
// page size: A4, landscape.
var DefaultPageSize = PageSize{Width: 297, Height: 210}

// Page maps worksheet coordinates, relative to a page corner, into SVG user
// space in millimetres with the origin at the top left corner.
type Page struct {
	PageSize

	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewPage returns the page geometry for the given size and setup margins.
func NewPage(size PageSize, setup worksheet.Setup) Page {
	return Page{
		PageSize: size,
		Left:     setup.LeftMargin,
		Right:    setup.RightMargin,
		Top:      setup.TopMargin,
		Bottom:   setup.BottomMargin,
	}
}

// Transform returns the position of p from the top left corner of the page.
func (pg Page) Transform(p worksheet.Point) (float64, float64) {
	switch p.Anchor {
	case worksheet.LeftTop:
		return p.X + pg.Left, p.Y + pg.Top
	case worksheet.LeftBottom:
		return p.X + pg.Left, pg.Height - pg.Bottom - p.Y
	case worksheet.RightTop:
		return pg.Width - pg.Right - p.X, p.Y + pg.Top
	}
	return pg.Width - pg.Right - p.X, pg.Height - pg.Bottom - p.Y
}

const epsilon = 1e-6

// Contains reports whether the transformed position x, y lies within the
// page margins.
func (pg Page) Contains(x, y float64) bool {
	return x >= pg.Left-epsilon && x <= pg.Width-pg.Right+epsilon &&
		y >= pg.Top-epsilon && y <= pg.Height-pg.Bottom+epsilon
}
