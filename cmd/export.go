package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/protview/internal/util"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/model"
	"go.uber.org/zap"
)

// formatRecord selects the single-record CSV instead of a signal analysis.
const formatRecord = "record"

var (
	flagExportID     string
	flagExportSide   string
	flagExportWindow int
	flagExportFormat string
	flagExportOut    string
	flagExportAll    bool
	flagExportQuery  string
	flagExportJobs   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write record CSVs or p-value analyses (csv, png, jpeg, svg) to a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagExportID == "" && !flagExportAll {
			return errors.New("either --id or --all is required")
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}
		if err := util.EnsureDir(flagExportOut); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		task := exportTask{
			side:   model.ParseSide(flagExportSide),
			window: model.ClampWindow(flagExportWindow),
			outDir: flagExportOut,
		}
		if flagExportFormat != formatRecord {
			if task.format, err = export.ParseFormat(flagExportFormat); err != nil {
				return err
			}
		}

		records, err := selectRecords(ds, flagExportID, flagExportAll, flagExportQuery)
		if err != nil {
			return err
		}

		written, err := exportAll(cmd.Context(), records, task, flagExportJobs)
		fmt.Printf("Wrote %d of %d file(s) to %s\n", written, len(records), flagExportOut)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportID, "id", "", "record id to export")
	exportCmd.Flags().StringVar(&flagExportSide, "side", "host", "sequence to analyse: host or target")
	exportCmd.Flags().IntVar(&flagExportWindow, "window", model.DEFAULT_WINDOW_SIZE, "rolling mean window (1-20)")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "csv", "csv, png, jpeg, svg or record")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "export every record (see --query)")
	exportCmd.Flags().StringVar(&flagExportQuery, "query", "", "with --all, only records whose host or target gene matches")
	exportCmd.Flags().IntVar(&flagExportJobs, "workers", runtime.NumCPU(), "parallel workers for --all")
	rootCmd.AddCommand(exportCmd)
}

type exportTask struct {
	side   model.Side
	window int
	format export.Format // empty means record CSV
	outDir string
}

func (t exportTask) payload(ctx context.Context, rec model.Record) (export.Payload, error) {
	if t.format == "" {
		return export.RecordCSV(rec), nil
	}
	return export.Export(ctx, rec, t.side, t.window, t.format)
}

// filename is the download name of rec before any de-duplication.
func (t exportTask) filename(rec model.Record) string {
	if t.format == "" {
		return export.RecordFilename(rec.HostGeneName, rec.TargetGeneName)
	}
	return export.Filename(rec.HostGeneName, rec.TargetGeneName, t.window, t.format)
}

func (t exportTask) run(ctx context.Context, item plannedExport) (string, error) {
	rec := item.record
	p, err := t.payload(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("record %s (%s/%s): %w", rec.ID.OID, rec.HostGeneName, rec.TargetGeneName, err)
	}

	path := filepath.Join(t.outDir, item.name)
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

type plannedExport struct {
	record model.Record
	name   string
}

// planOutputs gives every record its own file name. Names only depend on
// the gene pair, so a repeated pair gets the record id (or its position
// when the id is empty) appended. Names are compared case-insensitively.
func planOutputs(records []model.Record, task exportTask) []plannedExport {
	seen := make(map[string]bool, len(records))
	out := make([]plannedExport, 0, len(records))

	for i, rec := range records {
		name := util.SafeFilename(task.filename(rec))
		if seen[strings.ToLower(name)] {
			ext := filepath.Ext(name)
			base := strings.TrimSuffix(name, ext)
			suffix := rec.ID.OID
			if suffix == "" {
				suffix = strconv.Itoa(i + 1)
			}
			name = util.SafeFilename(base + "-" + suffix + ext)
			for n := 2; seen[strings.ToLower(name)]; n++ {
				name = util.SafeFilename(fmt.Sprintf("%s-%s-%d%s", base, suffix, n, ext))
			}
			logger.Warn("Duplicate gene pair, renaming output",
				zap.String("id", rec.ID.OID),
				zap.String("name", name))
		}
		seen[strings.ToLower(name)] = true
		out = append(out, plannedExport{record: rec, name: name})
	}
	return out
}

func selectRecords(ds *db.Dataset, id string, all bool, query string) ([]model.Record, error) {
	if !all {
		rec, err := ds.Get(id)
		if err != nil {
			return nil, err
		}
		return []model.Record{rec}, nil
	}
	return model.FilterRecords(ds.Records(), query), nil
}

// exportAll runs task over records with at most workers in flight. Output
// names are fixed before the fan-out; the first error stops the batch.
func exportAll(ctx context.Context, records []model.Record, task exportTask, workers int) (int, error) {
	if workers < 1 {
		workers = 1
	}

	var written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, item := range planOutputs(records, task) {
		g.Go(func() error {
			path, err := task.run(ctx, item)
			if err != nil {
				return err
			}

			written.Add(1)
			logger.Debug("Exported", zap.String("id", item.record.ID.OID), zap.String("path", path))
			return nil
		})
	}

	err := g.Wait()
	return int(written.Load()), err
}
