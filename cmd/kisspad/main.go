// Command kisspad is a terminal editor and batch renderer for Kiss,
// Brainfuck, BASIC and NASM sources with live syntax highlighting.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kisspad/config"
	"github.com/fwojciec/kisspad/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// NewRootCmd builds the command tree around app. Configuration is loaded
// before any subcommand runs; flags override file and environment values.
func NewRootCmd(app *App) *cobra.Command {
	var (
		cfgFile  string
		closeLog func()
	)
	v := viper.New()

	root := &cobra.Command{
		Use:           "kisspad",
		Short:         "Syntax-highlighting editor for Kiss, Brainfuck, BASIC and NASM",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			app.Config = cfg

			if cfg.LogFile != "" || cfg.Debug {
				path := cfg.LogFile
				if path == "" {
					path = "kisspad-debug.log"
				}
				if closeLog, err = log.Init(path); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .kisspad/config.yaml, then ~/.config/kisspad/config.yaml)")
	root.PersistentFlags().String("theme", "", "color theme: light or dark")
	root.PersistentFlags().Int("tab_width", 0, "tab stop interval")
	root.PersistentFlags().Bool("debug", false, "write debug logs")
	root.PersistentFlags().String("log_file", "", "log file path")
	root.PersistentFlags().StringP("diagnostics", "d", "", "diagnostics file whose error lines are highlighted")

	edit := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a file in the editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return app.Edit(cmd.Context(), path)
		},
	}

	var outDir, dump string
	render := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render highlighted files as HTML, ANSI, text or JSONL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Render(cmd.Context(), args, RenderOptions{
				Format: app.Config.Export.Format,
				OutDir: outDir,
				Dump:   dump,
			})
		},
	}
	render.Flags().StringP("format", "f", "", "output format: html, terminal, terminal256, text or jsonl")
	render.Flags().Bool("line_numbers", false, "include line numbers in HTML output")
	render.Flags().Int("workers", 0, "files rendered in parallel")
	render.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default: stdout)")
	render.Flags().StringVar(&dump, "dump", "", "append span records to this JSONL file")
	bindFlag(v, "export.format", render, "format")
	bindFlag(v, "export.line_numbers", render, "line_numbers")

	classify := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Print the language chosen for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Classify(args)
		},
	}

	stats := &cobra.Command{
		Use:   "stats <dump.jsonl>...",
		Short: "Summarize span dumps written by render --dump",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Stats(args)
		},
	}

	var force bool
	initConfig := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write an annotated default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return app.InitConfig(path, force)
		},
	}
	initConfig.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	root.AddCommand(edit, render, classify, stats, initConfig)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	return root
}

// bindFlag binds a flag to a nested config key. Viper reads the flag only
// when it was set on the command line.
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	_ = v.BindPFlag(key, cmd.Flags().Lookup(name))
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	root := NewRootCmd(NewApp(stdout, stderr))
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	// Query the terminal background before the editor owns the input loop.
	_ = lipgloss.HasDarkBackground()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
