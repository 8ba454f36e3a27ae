package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lf-lang/pretvm-go/internal/pretvm/asm"
	"github.com/lf-lang/pretvm-go/internal/pretvm/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lf-lang/pretvm-go/pkg/pretvm"
)

var (
	schedulePath string
	configPath   string
	debug        bool
	timeoutFlag  time.Duration

	rootCmd = &cobra.Command{
		Use:   "pretvm-run",
		Short: "Run or validate a static PRET-VM schedule",
		Long:  `pretvm-run loads a YAML schedule and shared runtime configuration and executes it on a multi-worker instruction VM.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&schedulePath, "schedule", "", "path to the schedule YAML file (required)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the runtime config YAML file (optional, defaults apply)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable per-instruction dispatch trace logging")
	rootCmd.MarkPersistentFlagRequired("schedule")

	runCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "override the run's timeout (0 keeps the config value)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a schedule to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if timeoutFlag > 0 {
			cfg.Timeout = pretvm.Interval(timeoutFlag)
		}

		schedules, err := asm.LoadFile(schedulePath)
		if err != nil {
			return fmt.Errorf("loading schedule: %w", err)
		}

		rt, err := pretvm.NewRuntime(cfg, schedules, pretvm.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("constructing runtime: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		start := time.Now()
		if err := rt.Run(ctx); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		logger.Info().Dur("elapsed", time.Since(start)).Msg("run finished")
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Statically validate a schedule without executing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		schedules, err := asm.LoadFile(schedulePath)
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d worker schedule(s) validated\n", len(schedules))
		return nil
	},
}

func loadConfig() (*pretvm.Config, error) {
	if configPath == "" {
		return pretvm.DefaultConfig(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
