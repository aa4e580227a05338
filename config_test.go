package wks2svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiam/wks2svg/emitter"
)

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	in := `
output_dir: build/templates
stroke_scale: 1
pages:
  a6: {width: 148, height: 105}
editable:
  "%k": Keywords
`
	cfg, err := LoadConfig(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "build/templates", cfg.OutputDir)
	assert.Equal(t, "*.kicad_wks", cfg.Pattern)
	assert.Equal(t, 1.0, cfg.StrokeScale)
	assert.Equal(t, 0.35, cfg.BaselineShift)

	size, ok := cfg.PageSize("A6")
	assert.True(t, ok)
	assert.Equal(t, emitter.PageSize{Width: 148, Height: 105}, size)

	// Defaults are kept next to the new entries.
	_, ok = cfg.PageSize("a4")
	assert.True(t, ok)
	assert.Equal(t, "Keywords", cfg.Editable["%K"])
	assert.Equal(t, "Title", cfg.Editable["%T"])
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("font: osifont\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("stroke_scale: [1, 2]\n"))
	assert.Error(t, err)
}

func TestConfigYAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "svg"

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "output_dir: svg")
	assert.Contains(t, string(out), "A4-PORTRAIT:")

	back, err := LoadConfig(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestPageFor(t *testing.T) {
	a3 := emitter.PageSize{Width: 420, Height: 297}
	a4 := emitter.PageSize{Width: 297, Height: 210}
	portrait := emitter.PageSize{Width: 210, Height: 297}

	testCases := []struct {
		page string
		path string
		want emitter.PageSize
	}{
		{"", "A3_title_block.kicad_wks", a3},
		{"", "dir/a3_title_block.kicad_wks", a3},
		{"", "A4-portrait_gost.kicad_wks", portrait},
		{"", "Letter_title_block.kicad_wks", a4},
		{"", "pagelayout_default.kicad_wks", a4},
		{"", "A3.kicad_wks", a4},
		{"A3", "A4_title_block.kicad_wks", a3},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig()
		cfg.Page = tc.page

		got, err := cfg.PageFor(tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestPageForUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Page = "Letter"

	_, err := cfg.PageFor("A4_title_block.kicad_wks")
	assert.EqualError(t, err, `unknown page "Letter"`)

	cfg = DefaultConfig()
	cfg.DefaultPage = "Letter"

	size, err := cfg.PageFor("title_block.kicad_wks")
	require.NoError(t, err)
	assert.True(t, size.IsZero())
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontFamily = "DejaVu Sans"

	opts, err := cfg.Options("testdata/A3_title_block.kicad_wks")
	require.NoError(t, err)

	assert.Equal(t, emitter.PageSize{Width: 420, Height: 297}, opts.Page)
	assert.Equal(t, "A3_title_block.kicad_wks", opts.Description)
	assert.Equal(t, "DejaVu Sans", opts.FontFamily)
	assert.Equal(t, 0.75, opts.StrokeScale)
	assert.Equal(t, 1, opts.PageNumber)
}
