// Package cmd implements the flurry command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/phanxgames/flurry/internal/config"
	"github.com/phanxgames/flurry/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type contextKey string

const appKey contextKey = "app"

// app is the per-invocation state shared with subcommands.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	runID string
}

// NewRootCommand builds the flurry command tree.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "flurry",
		Short:         "Flurry is a particle choreography engine driven by hands, touch and strokes.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(cmd, v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			observability.InitializeLogger(cfg.Logger)
			runID := uuid.NewString()
			logger := observability.GetLogger().With(zap.String("run_id", runID))
			logger.Debug("Starting flurry",
				zap.String("version", Version),
				zap.String("command", cmd.Name()),
				zap.String("config_file", v.ConfigFileUsed()),
			)

			ctx := context.WithValue(cmd.Context(), appKey, &app{cfg: cfg, log: logger, runID: runID})
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./flurry.yaml or ~/.config/flurry/flurry.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newTermCmd())
	rootCmd.AddCommand(newScriptCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newShapesCmd())
	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	defer observability.Sync()
	if err != nil && !errors.Is(err, context.Canceled) {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// initializeConfig reads the config file, FLURRY_* environment variables and
// flags into v.
func initializeConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		for _, p := range config.SearchPaths() {
			v.AddConfigPath(p)
		}
		v.SetConfigName("flurry")
		v.SetConfigType("yaml")
	}
	config.BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return nil
}

// flagKeys maps command flags onto config keys. A flag only overrides the
// config when it was set explicitly.
var flagKeys = map[string]string{
	"log-level": "logger.level",
	"particles": "engine.particles",
	"shape":     "engine.shape",
	"color":     "engine.color",
	"seed":      "engine.seed",
	"debug":     "engine.debug",
	"source":    "input.source",
	"width":     "viewer.width",
	"height":    "viewer.height",
}

func appFromContext(ctx context.Context) (*app, error) {
	a, ok := ctx.Value(appKey).(*app)
	if !ok || a == nil {
		return nil, errors.New("configuration not loaded")
	}
	return a, nil
}
