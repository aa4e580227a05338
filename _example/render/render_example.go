package main

import (
	"log"
	"os"

	"github.com/xiam/wks2svg/emitter"
	"github.com/xiam/wks2svg/parser"
	"github.com/xiam/wks2svg/worksheet"
)

func main() {
	input := `
		(page_layout
			(setup (size 210 297) (left_margin 10) (right_margin 10) (top_margin 10) (bottom_margin 10))
			(rect (name frame) (start 0 0 ltcorner) (end 0 0))
			(line (name row) (start 110 8) (end 2 8) (repeat 3) (incry 8))
			(tbtext "%T" (name title) (pos 105 12) (font bold (size 2 2)))
			(tbtext "Rev: %R" (pos 30 4))
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

	stats, err := emitter.New(os.Stdout, emitter.DefaultOptions()).Emit(ws)
	if err != nil {
		log.Fatal("emitter.Emit:", err)
	}

	log.Printf("%d elements, %d skipped", stats.Elements, stats.Skipped)
}
