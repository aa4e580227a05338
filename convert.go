// Package wks2svg converts KiCad worksheet templates (.kicad_wks) into SVG
// templates for the FreeCAD TechDraw workbench.
package wks2svg

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xiam/wks2svg/emitter"
	"github.com/xiam/wks2svg/parser"
	"github.com/xiam/wks2svg/worksheet"
)

// Extension of worksheet template files.
const Extension = ".kicad_wks"

// BatchResult holds the outcome of a batch conversion.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed to convert.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter turns worksheet files into SVG files.
type Converter struct {
	cfg Config
	log *log.Logger
}

// NewConverter creates a converter. A nil logger discards messages.
func NewConverter(cfg Config, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{cfg: cfg, log: logger}
}

// Config returns the settings of the converter.
func (c *Converter) Config() Config {
	return c.cfg
}

// Convert returns the SVG document for the worksheet source. The name of the
// source file selects the page size.
func (c *Converter) Convert(src []byte, name string) ([]byte, emitter.Stats, error) {
	opts, err := c.cfg.Options(name)
	if err != nil {
		return nil, emitter.Stats{}, err
	}
	opts.Logger = c.log

	root, err := parser.Parse(src)
	if err != nil {
		return nil, emitter.Stats{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	ws, err := worksheet.Decode(root)
	if err != nil {
		return nil, emitter.Stats{}, fmt.Errorf("decoding %s: %w", name, err)
	}

	doc, stats, err := emitter.Render(ws, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("rendering %s: %w", name, err)
	}

	c.log.Printf("%s: %d elements, %d skipped", name, stats.Elements, stats.Skipped)
	return doc, stats, nil
}

// OutputPath returns where the SVG of the worksheet at path is written.
func (c *Converter) OutputPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), Extension)
	return filepath.Join(c.cfg.OutputDir, base+".svg")
}

// ConvertFile converts the worksheet at path and writes the result into the
// output directory. It returns the path of the written file.
func (c *Converter) ConvertFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading worksheet: %w", err)
	}

	doc, _, err := c.Convert(src, path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	out := c.OutputPath(path)
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}

// ConvertBatch converts every file in paths, printing per-file status to w
// and returning a summary. A failure does not stop the batch.
func (c *Converter) ConvertBatch(paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		out, err := c.ConvertFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", path, out)
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// Inputs expands the given paths into worksheet files. Directories are
// searched, without recursion, for files matching the configured pattern.
// Without paths the input directory is used.
func (c *Converter) Inputs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{c.cfg.InputDir}
	}

	pattern := c.cfg.Pattern
	if pattern == "" {
		pattern = "*" + Extension
	}

	files := []string{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", path, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
