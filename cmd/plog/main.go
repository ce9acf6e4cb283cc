package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/plog/internal/cliconfig"
	"github.com/bft-labs/plog/pkg/log"
)

const longHelp = `plog sends messages to a plog daemon over UDP.

Messages larger than the chunk size are split into numbered chunks that the
daemon reassembles. Delivery is fire-and-forget: nothing is acknowledged or
retried.

Configuration is read from $HOME/.plog/config.toml, then PLOG_* environment
variables, then flags, each overriding the previous.`

var exampleUsage = strings.TrimSpace(`
  plog send "deploy finished"
  journalctl -f -o cat | plog send --host logs.internal
  plog follow --file /var/log/app.log --metrics-addr :9102
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the resolved configuration and logger to subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  *log.ZerologAdapter
}

func main() {
	a := &app{
		cfg:    cliconfig.DefaultConfig(),
		logger: log.NewZerologAdapter(os.Stderr, "info"),
	}

	if err := newRootCommand(a).Execute(); err != nil {
		a.logger.Error("plog", log.Err(err))
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "plog",
		Short:         "Send chunked messages to a plog daemon over UDP",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.plog/config.toml)")
	flags.StringVar(&a.cfg.Host, "host", a.cfg.Host, "plog daemon host")
	flags.IntVar(&a.cfg.Port, "port", a.cfg.Port, "plog daemon UDP port")
	flags.IntVar(&a.cfg.ChunkSize, "chunk-size", a.cfg.ChunkSize, "maximum message bytes per packet")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(newSendCommand(a), newFollowCommand(a))
	return root
}

// loadConfig resolves defaults, file, environment and flags, in that order of
// increasing precedence.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = log.NewZerologAdapter(os.Stderr, a.cfg.LogLevel)
	a.logger.Debug("configuration", log.Any("config", a.cfg))
	return nil
}
