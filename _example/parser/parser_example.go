package main

import (
	"fmt"
	"log"

	"github.com/xiam/wks2svg/parser"
	"github.com/xiam/wks2svg/worksheet"
)

func main() {
	input := `
		(kicad_wks (version 20220228) (generator pl_editor)
			(setup (textsize 1.5 1.5) (linewidth 0.15) (left_margin 10) (right_margin 10))
			(line (name "") (start 110 18) (end 2 18))
			(tbtext "%T" (pos 109 10.7) (font bold (size 2 2)))
			(tbtext "A" (pos 25 1 ltcorner) (repeat 4) (incrx 50))
			(bitmap (name "") (pos 40 40) (scale 1))
		)
	`

	root, err := parser.Parse([]byte(input))
	if err != nil {
		log.Fatal("parser.Parse:", err)
	}

	ws, err := worksheet.Decode(root)
	if err != nil {
		log.Fatal("worksheet.Decode:", err)
	}

	for i, item := range ws.Items {
		switch v := item.(type) {
		case *worksheet.Setup:
			fmt.Printf("item[%d] setup: text %gx%g mm, line %g mm\n", i, v.TextWidth, v.TextHeight, v.LineWidth)
		case *worksheet.Line:
			fmt.Printf("item[%d] line: %v -> %v\n", i, v.Start, v.End)
		case *worksheet.Text:
			labels := []string{}
			for j := 0; j < v.Repeat.Times(); j++ {
				labels = append(labels, v.Label(j))
			}
			fmt.Printf("item[%d] text at %v (placeholder: %v): %q\n", i, v.Pos, v.IsPlaceholder(), labels)
		default:
			fmt.Printf("item[%d] %T\n", i, v)
		}
	}

	fmt.Printf("skipped: %v\n", ws.Skipped)
}
