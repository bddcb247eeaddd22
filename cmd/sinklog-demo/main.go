// Command sinklog-demo exercises the logging facade end to end: every
// level, a conditional warning, flushing severities, an assertion and a
// clean shutdown.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/philipp01105/sinklog/assertion"
	"github.com/philipp01105/sinklog/config"
	"github.com/philipp01105/sinklog/logger"
)

// Version can be set during build with -ldflags
var version = "dev"

type demoFlags struct {
	configPath string
	level      string
	mode       string
	pattern    string
	logFile    string
	failCheck  bool
}

func newRootCmd() *cobra.Command {
	var flags demoFlags

	cmd := &cobra.Command{
		Use:   "sinklog-demo",
		Short: "Demonstrate the sinklog logging facade",
		Long: `sinklog-demo initializes the logging facade from a config file,
SINKLOG_* environment variables and flags (in increasing priority),
then logs at every level and shuts down cleanly.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.LookupEnv)
			applyFlags(cmd, &cfg, flags)

			opts := cfg.Options()
			opts.Console = cmd.OutOrStdout()
			f := logger.NewFacade(opts)
			f.Init(cfg.LevelValue(), cfg.ModeValue(), cfg.Pattern)

			runDemo(f, flags.failCheck)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "sinklog.yaml", "path to the YAML config file")
	cmd.Flags().StringVarP(&flags.level, "level", "l", "", "threshold: trace, debug, info, warning, error, critical, off")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "delivery mode: immediate or deferred")
	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "record pattern")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", `log file path, or "off" to disable`)
	cmd.Flags().BoolVar(&flags.failCheck, "fail-check", false, "trigger a failing assertion (exits with 134)")
	return cmd
}

// applyFlags overlays the flags the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags demoFlags) {
	if cmd.Flags().Changed("level") {
		cfg.Level = flags.level
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = flags.mode
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = flags.pattern
	}
	if cmd.Flags().Changed("log-file") {
		cfg.ApplyEnv(func(key string) (string, bool) {
			if key == config.EnvFile {
				return flags.logFile, true
			}
			return "", false
		})
	}
}

func runDemo(f *logger.Facade, failCheck bool) {
	f.Info("sinklog demo starting up")
	f.Debug("Debug log example with value=%d", 123)
	f.Trace("Trace example (hidden unless the level is trace)")

	featureEnabled := true
	f.WarnIf(featureEnabled, "Feature '%s' is enabled (demo warning)", "experimental-mode")

	f.Error("Something went wrong, but this is just a demo")
	f.Critical("Critical condition encountered, continuing demo")

	x, y := 10, 0
	f.Info("Testing assertions with x=%d, y=%d", x, y)
	checks := assertion.New(f)
	checks.Check(x == 10)
	if failCheck {
		checks.Check(y != 0, "Invalid divisor: y=%d must not be zero!", y)
	}

	f.Info("Demo completed. Shutting down cleanly...")
	f.Flush()
	f.Reset()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
