package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/structbind/config"
	"github.com/wippyai/structbind/transcoder"
)

var errorColor = color.New(color.FgRed, color.Bold)

// app is the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "structbind",
		Short:         "Generate binary codecs from BTF type information",
		Long:          `structbind reads BTF debug info and produces exact-layout decoders and encoders for every struct, enum, array and scalar it describes.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./structbind.toml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log generation details")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newDecodeCmd(a),
		newEncodeCmd(a),
		newBrowseCmd(a),
	)
	return root, a
}

// setup loads the configuration, binding the flags of cmd over file and
// environment values, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	v, err := config.New(path)
	if err != nil {
		return err
	}

	for key, flag := range map[string]string{
		"verbose": "verbose",
		"color":   "color",
		"format":  "format",
		"package": "package",
		"out_dir": "out-dir",
		"jobs":    "jobs",
		"raw":     "raw",
	} {
		// decode has its own --format for value output
		if key == "format" && cmd.Name() != "generate" {
			continue
		}
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	switch cfg.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	a.log = log
	transcoder.SetLogger(log)
	return nil
}

// newLogger builds a development logger for --verbose and a production
// logger that only reports warnings otherwise. Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	_ = a.log.Sync()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
