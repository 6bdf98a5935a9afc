package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yumyai/protview/pkg/model"
)

var ErrRecordNotFound = errors.New("record not found")

// Dataset holds the records loaded at startup. It is never mutated after
// construction, so it can be shared by every handler without locking.
type Dataset struct {
	records []model.Record
	byID    map[string]int
	source  string
}

func NewDataset(records []model.Record, source string) *Dataset {
	byID := make(map[string]int, len(records))
	for i, r := range records {
		// First record wins on duplicate ids.
		if _, ok := byID[r.ID.OID]; !ok && r.ID.OID != "" {
			byID[r.ID.OID] = i
		}
	}

	return &Dataset{
		records: records,
		byID:    byID,
		source:  source,
	}
}

// Records returns the shared, read-only record slice.
func (d *Dataset) Records() []model.Record {
	return d.records
}

func (d *Dataset) Len() int {
	return len(d.records)
}

func (d *Dataset) Source() string {
	return d.source
}

// Get finds a record by its object id.
func (d *Dataset) Get(id string) (model.Record, error) {
	i, ok := d.byID[id]
	if !ok {
		return model.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return d.records[i], nil
}

// DecodeJSON reads a JSON array of records. Missing fields stay at their
// zero value; no validation is done.
func DecodeJSON(r io.Reader) ([]model.Record, error) {
	var records []model.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return records, nil
}

// LoadJSON loads the bundled dataset file.
func LoadJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	records, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewDataset(records, path), nil
}
