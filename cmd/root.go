package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yumyai/protview/internal/config"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"go.uber.org/zap"
)

const VERSION = "0.1.0"

var (
	flagData     string
	flagSQLite   string
	flagLogLevel string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "protview",
	Short:         "Browse gene-pair protein sequences and their p-value profiles",
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() {
	defer logger.Sync() // Make sure that the buffered is flushed.

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "dataset JSON file (default $"+config.EnvData+" or "+config.DefaultDataPath+")")
	rootCmd.PersistentFlags().StringVar(&flagSQLite, "sqlite", "", "SQLite dataset, used instead of --data when set")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	addServeFlags(rootCmd)
}

// setup loads env config, applies flag overrides, validates and starts the logger.
func setup(cmd *cobra.Command) error {
	if err := logger.InitLevel(config.DefaultLogLevel); err != nil {
		return err
	}
	cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = flagData
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = flagSQLite
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	applyServeFlags(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.InitLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// loadDataset reads the records once; they are never modified afterwards.
func loadDataset() (*db.Dataset, error) {
	var (
		ds  *db.Dataset
		err error
	)
	if cfg.UseSQLite() {
		ds, err = db.LoadSQLite(cfg.SQLitePath)
	} else {
		ds, err = db.LoadJSON(cfg.DataPath)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Dataset loaded", zap.String("source", ds.Source()), zap.Int("records", ds.Len()))
	return ds, nil
}
