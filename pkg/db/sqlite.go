package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/model"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS protein_pairs (
		row_id          INTEGER PRIMARY KEY AUTOINCREMENT,
		oid             TEXT NOT NULL,
		hgene_name      TEXT NOT NULL DEFAULT '',
		tgene_name      TEXT NOT NULL DEFAULT '',
		seq_desc        TEXT NOT NULL DEFAULT '',
		hgene_seq       TEXT NOT NULL DEFAULT '',
		tgene_seq       TEXT NOT NULL DEFAULT '',
		is_out_of_frame INTEGER NOT NULL DEFAULT 0,
		is_analyzed     INTEGER NOT NULL DEFAULT 0
	);
`

// OpenSQLite opens (or creates) a SQLite file with the modernc driver.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// ImportRecords replaces the protein_pairs table with records in one
// transaction. Row order is kept so the browse order survives the copy.
func ImportRecords(ctx context.Context, db *sql.DB, records []model.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create protein_pairs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM protein_pairs`); err != nil {
		return fmt.Errorf("clear protein_pairs: %w", err)
	}

	stm, err := tx.PrepareContext(ctx, `
		INSERT INTO protein_pairs
			(oid, hgene_name, tgene_name, seq_desc, hgene_seq, tgene_seq, is_out_of_frame, is_analyzed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stm.Close()

	for _, r := range records {
		if _, err := stm.ExecContext(ctx,
			r.ID.OID, r.HostGeneName, r.TargetGeneName, r.SequenceDescription,
			r.HostSequence, r.TargetSequence, r.IsOutOfFrame, r.IsAnalyzed); err != nil {
			return fmt.Errorf("insert %s-%s: %w", r.HostGeneName, r.TargetGeneName, err)
		}
	}

	return tx.Commit()
}

// QueryRecords reads every row of protein_pairs in insertion order.
func QueryRecords(ctx context.Context, db *sql.DB) ([]model.Record, error) {

	qstring := `
		SELECT oid, hgene_name, tgene_name, seq_desc, hgene_seq, tgene_seq, is_out_of_frame, is_analyzed
		FROM protein_pairs
		ORDER BY row_id;
	`

	stm, err := db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.Record, 0, 64)
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID.OID, &r.HostGeneName, &r.TargetGeneName, &r.SequenceDescription,
			&r.HostSequence, &r.TargetSequence, &r.IsOutOfFrame, &r.IsAnalyzed); err != nil {
			return nil, fmt.Errorf("failed to scan protein row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// LoadSQLite loads the dataset from a SQLite file produced by ImportRecords.
// The connection is closed once the records are in memory.
func LoadSQLite(path string) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := QueryRecords(ctx, db)
	if err != nil {
		logger.Error("Loading dataset from sqlite failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return NewDataset(records, path), nil
}
