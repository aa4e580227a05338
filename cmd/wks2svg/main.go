// Package main is the entry point for the wks2svg CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xiam/wks2svg"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts worksheet templates.
var rootCmd = &cobra.Command{
	Use:   "wks2svg [paths...]",
	Short: "Convert KiCad worksheet templates into FreeCAD TechDraw SVG templates",
	Long: `wks2svg reads KiCad worksheet templates (.kicad_wks) and writes one SVG
template per file, ready to be used by the FreeCAD TechDraw workbench.

Paths may be files or directories. Directories are searched, without
recursion, for files matching the configured pattern. Without paths the
configured input directory is converted.

The page size is taken from the worksheet setup, then from the file name
prefix (A4_title_block.kicad_wks is an A4 sheet), then from the configured
default page. Use --page to force it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := wks2svg.NewConverter(cfg, newLogger(cmd))

		files, err := c.Inputs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no worksheet files found")
		}

		result := c.ConvertBatch(files, cmd.OutOrStdout())
		if result.HasFailures() {
			return fmt.Errorf("%d of %d files failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wks2svg.yaml or ~/.config/wks2svg/wks2svg.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion details to stderr")
	rootCmd.PersistentFlags().String("out", "", "output directory")
	rootCmd.PersistentFlags().String("page", "", "force the page size, by name (A4, A3, ...)")

	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("page", rootCmd.PersistentFlags().Lookup("page"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wks2svg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wks2svg"))
		}
	}

	def := wks2svg.DefaultConfig()
	viper.SetDefault("input_dir", def.InputDir)
	viper.SetDefault("output_dir", def.OutputDir)
	viper.SetDefault("pattern", def.Pattern)
	viper.SetDefault("page", def.Page)
	viper.SetDefault("default_page", def.DefaultPage)
	viper.SetDefault("stroke_scale", def.StrokeScale)
	viper.SetDefault("baseline_shift", def.BaselineShift)
	viper.SetDefault("font_family", def.FontFamily)

	viper.SetEnvPrefix("WKS2SVG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the defaults overridden by the config file, the
// environment and the flags.
func loadConfig() (wks2svg.Config, error) {
	cfg := wks2svg.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return wks2svg.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}
	return log.New(cmd.ErrOrStderr(), "wks2svg: ", 0)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
