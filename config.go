package wks2svg

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/xiam/wks2svg/emitter"
)

// Config holds the settings of a conversion run.
type Config struct {
	// InputDir is converted when no input path is given.
	InputDir string `yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives one SVG file per input.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// Pattern selects the worksheet files of a directory.
	Pattern string `yaml:"pattern" mapstructure:"pattern"`

	// Page forces the page size of every file, by name. When empty the page
	// is taken from the file name prefix, or DefaultPage.
	Page string `yaml:"page,omitempty" mapstructure:"page"`

	DefaultPage string `yaml:"default_page" mapstructure:"default_page"`

	// Pages maps page names, such as "A4", to sizes in millimetres.
	Pages map[string]emitter.PageSize `yaml:"pages" mapstructure:"pages"`

	StrokeScale   float64 `yaml:"stroke_scale" mapstructure:"stroke_scale"`
	BaselineShift float64 `yaml:"baseline_shift" mapstructure:"baseline_shift"`
	FontFamily    string  `yaml:"font_family" mapstructure:"font_family"`

	// Editable maps placeholders to FreeCAD editable field names.
	Editable map[string]string `yaml:"editable" mapstructure:"editable"`
}

// DefaultConfig returns the settings used when no configuration file is
// found.
func DefaultConfig() Config {
	opts := emitter.DefaultOptions()

	return Config{
		InputDir:    filepath.Join("kicad-templates", "Worksheets"),
		OutputDir:   "out",
		Pattern:     "*.kicad_wks",
		DefaultPage: "A4",
		Pages: map[string]emitter.PageSize{
			"A0":          {Width: 1189, Height: 841},
			"A1":          {Width: 841, Height: 594},
			"A2":          {Width: 594, Height: 420},
			"A3":          {Width: 420, Height: 297},
			"A4":          {Width: 297, Height: 210},
			"A4-PORTRAIT": {Width: 210, Height: 297},
			"A5":          {Width: 210, Height: 148},
		},
		StrokeScale:   opts.StrokeScale,
		BaselineShift: opts.BaselineShift,
		FontFamily:    opts.FontFamily,
		Editable:      opts.Editable,
	}
}

// LoadConfig reads YAML settings from r on top of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize upper-cases page names and placeholders. Configuration loaders
// that fold keys to lower case, such as viper, would otherwise break the
// lookups.
func (c *Config) Normalize() {
	pages := make(map[string]emitter.PageSize, len(c.Pages))
	for name, size := range c.Pages {
		pages[strings.ToUpper(name)] = size
	}
	c.Pages = pages

	editable := make(map[string]string, len(c.Editable))
	for placeholder, field := range c.Editable {
		editable[strings.ToUpper(placeholder)] = field
	}
	c.Editable = editable
}

// YAML returns the configuration encoded as YAML.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return buf.Bytes(), nil
}

// PageSize returns the size of the named page.
func (c Config) PageSize(name string) (emitter.PageSize, bool) {
	size, ok := c.Pages[strings.ToUpper(name)]
	return size, ok
}

// PageFor returns the page size of the worksheet file at path. The forced
// page comes first, then the file name prefix before the first "_", then the
// default page. An unknown forced page is an error.
func (c Config) PageFor(path string) (emitter.PageSize, error) {
	if c.Page != "" {
		size, ok := c.PageSize(c.Page)
		if !ok {
			return emitter.PageSize{}, fmt.Errorf("unknown page %q", c.Page)
		}
		return size, nil
	}

	base := filepath.Base(path)
	if i := strings.Index(base, "_"); i > 0 {
		if size, ok := c.PageSize(base[:i]); ok {
			return size, nil
		}
	}

	if size, ok := c.PageSize(c.DefaultPage); ok {
		return size, nil
	}
	return emitter.PageSize{}, nil
}

// Options returns the emitter options for the worksheet file at path.
func (c Config) Options(path string) (emitter.Options, error) {
	page, err := c.PageFor(path)
	if err != nil {
		return emitter.Options{}, err
	}

	opts := emitter.DefaultOptions()
	opts.Page = page
	opts.Description = filepath.Base(path)
	if c.StrokeScale > 0 {
		opts.StrokeScale = c.StrokeScale
	}
	if c.BaselineShift > 0 {
		opts.BaselineShift = c.BaselineShift
	}
	if c.FontFamily != "" {
		opts.FontFamily = c.FontFamily
	}
	if c.Editable != nil {
		opts.Editable = c.Editable
	}
	return opts, nil
}
