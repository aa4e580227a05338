package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiam/wks2svg/ast"
	"github.com/xiam/wks2svg/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the s-expression tree of a worksheet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading worksheet: %w", err)
		}

		root, err := parser.Parse(src)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		if encode, _ := cmd.Flags().GetBool("encode"); encode {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ast.Encode(root))
			return nil
		}

		ast.Fprint(cmd.OutOrStdout(), root)
		return nil
	},
}

func init() {
	parseCmd.Flags().Bool("encode", false, "print the tree back as a single line s-expression")

	rootCmd.AddCommand(parseCmd)
}
