package main

import (
	"fmt"
	"log"

	"github.com/xiam/wks2svg/lexer"
)

func main() {
	input := `
		(page_layout
			(setup (textsize 1.5 1.5) (linewidth 0.15))
			(tbtext "Sheet: %S/%N" (pos 109 4.1) (option notonpage1))
		)
	`

	tokens, err := lexer.Tokenize([]byte(input))
	if err != nil {
		log.Fatal("lexer.Tokenize:", err)
	}

	for i, tok := range tokens {
		line, col := tok.Pos()
		lexeme := tok.Text()
		tt := tok.Type().String()

		fmt.Printf("token[%d] (type: %v, line: %d, col: %d)\n\t-> %q\n\n", i, tt, line, col, lexeme)
	}
}
