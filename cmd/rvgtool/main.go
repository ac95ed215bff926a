// rvgtool is a CLI utility for inspecting, rendering and producing RVG
// vector graphic files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/rvg/internal/config"
	"github.com/Faultbox/rvg/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every command once flags are parsed.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rvgtool",
		Short: "RVG vector graphic utility",
		Long: `rvgtool - RVG vector graphic utility

Examples:
  rvgtool info logo.rvg
  rvgtool dump logo.rvg
  rvgtool render logo.rvg logo.png --scale 4
  rvgtool bitmaps logo.rvg ./textures --width 64
  rvgtool sample example.rvg`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		a.infoCmd(),
		a.dumpCmd(),
		a.renderCmd(),
		a.bitmapsCmd(),
		a.sampleCmd(),
	)
	return root
}

// setup loads configuration and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	file := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		file = logger.DefaultFileConfig(cfg.Logging.LogFile)
		file.MaxSizeMB = cfg.Logging.MaxSizeMB
		file.MaxBackups = cfg.Logging.MaxBackups
	}
	return logger.InitWithOptions(logger.Options{
		Level:   cfg.Logging.Level,
		File:    file,
		Console: cmd.ErrOrStderr(),
	})
}
