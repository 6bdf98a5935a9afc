package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <sqlite-file>",
	Short: "Copy the JSON dataset into a SQLite file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := db.LoadJSON(cfg.DataPath)
		if err != nil {
			return err
		}

		conn, err := db.OpenSQLite(args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.ImportRecords(cmd.Context(), conn, ds.Records()); err != nil {
			return err
		}

		logger.Info("Import finished", zap.String("from", cfg.DataPath), zap.String("to", args[0]), zap.Int("records", ds.Len()))
		fmt.Printf("Imported %d record(s) into %s\n", ds.Len(), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
