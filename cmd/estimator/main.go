package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpgo/realestate-estimator/internal/calculation"
	"github.com/rpgo/realestate-estimator/internal/config"
	"github.com/rpgo/realestate-estimator/internal/domain"
)

var version = "dev"

// app carries what every subcommand needs once flags and settings are read
type app struct {
	v            *viper.Viper
	settingsFile string

	logger *zap.Logger
	config *domain.Configuration
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "estimator",
		Short: "Real-estate transaction cost and flat tax estimator",
		Long: `estimator itemizes the costs of buying or selling a home in Taiwan:
down payment, agent commission, notary and government fees, and for sellers the
integrated housing-and-land (flat) tax and net profit.

Prices and fees are entered in ten-thousands (萬). Results are estimates only.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsFile, "settings", "", "settings file (default: ./settings.yaml or $HOME/.config/estimator/settings.yaml)")
	pf.String("config", "", "policy file with rates, down payment presets and deductible costs")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.StringP("format", "f", "console", "output format (console, console-lite, csv, detailed-csv, html, json)")
	pf.String("output-dir", "", "write the report to a timestamped file in this directory instead of stdout")

	_ = a.v.BindPFlag("config", pf.Lookup("config"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("output.format", pf.Lookup("format"))
	_ = a.v.BindPFlag("output.dir", pf.Lookup("output-dir"))

	root.AddCommand(a.buyCmd())
	root.AddCommand(a.sellCmd())
	root.AddCommand(a.fileCmd())
	root.AddCommand(a.tiersCmd())
	root.AddCommand(a.initConfigCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) init(_ *cobra.Command, _ []string) error {
	if a.settingsFile != "" {
		a.v.SetConfigFile(a.settingsFile)
	} else {
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "estimator"))
		}
		a.v.SetConfigName("settings")
		a.v.SetConfigType("yaml")
	}

	// Environment variables, e.g. ESTIMATOR_OUTPUT_FORMAT
	a.v.SetEnvPrefix("ESTIMATOR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		// No settings file is fine, flags and defaults apply
	}

	logger, err := newLogger(a.v.GetString("log.level"), a.v.GetString("log.format"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	cfg := a.parser.CreateExampleConfiguration()
	if path := a.v.GetString("config"); path != "" {
		cfg, err = a.parser.LoadFromFile(path)
		if err != nil {
			return err
		}
		a.logger.Debug("loaded policy configuration", zap.String("path", path))
	}
	a.config = cfg

	a.engine = calculation.NewCalculationEngineWithConfig(*cfg)
	a.engine.SetLogger(a.logger.Sugar())
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "estimator version %s\n", version)
		},
	}
}
