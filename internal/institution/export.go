package institution

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ExportRow is the flat persisted form of one program, the contract shared
// with the public universities.json consumers. Specialization travels by
// name; an unlinked row keeps an empty name rather than being dropped.
type ExportRow struct {
	Name           string `json:"name"`
	City           string `json:"city"`
	ScoreMin       int    `json:"score_min"`
	ScoreMax       int    `json:"score_max"`
	URL            string `json:"url"`
	Specialization string `json:"specialization"`
}

// Exporter materializes the institution dataset into its flat-file form.
// It is invoked after every administrative mutation.
type Exporter struct {
	store *SQLStore
	path  string
	log   *zap.Logger
}

func NewExporter(store *SQLStore, path string, log *zap.Logger) *Exporter {
	return &Exporter{store: store, path: path, log: log}
}

// Rows assembles the current dataset as export rows.
func (e *Exporter) Rows(ctx context.Context) ([]ExportRow, error) {
	all, err := e.store.ListInstitutions(ctx)
	if err != nil {
		return nil, err
	}
	specs, err := e.store.ListSpecializations(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(specs))
	for _, sp := range specs {
		names[sp.ID] = sp.Name
	}
	rows := make([]ExportRow, 0, len(all))
	for _, i := range all {
		rows = append(rows, ExportRow{
			Name:           i.Name,
			City:           i.City,
			ScoreMin:       i.ScoreMin,
			ScoreMax:       i.ScoreMax,
			URL:            i.URL,
			Specialization: names[i.SpecializationID],
		})
	}
	return rows, nil
}

// Sync writes the dataset to the configured path atomically (temp file +
// rename) and returns the exported row count.
func (e *Exporter) Sync(ctx context.Context) (int, error) {
	rows, err := e.Rows(ctx)
	if err != nil {
		return 0, err
	}
	buf, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return 0, err
	}
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, ".universities-*.json")
	if err != nil {
		return 0, err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	if err := os.Rename(tmp.Name(), e.path); err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	e.log.Info("dataset synchronized", zap.String("path", e.path), zap.Int("count", len(rows)))
	return len(rows), nil
}

// Import converts export rows back into institutions, resolving
// specializations by name. Rows with an unknown specialization are returned
// separately so the caller can surface them instead of losing them silently.
func Import(rows []ExportRow, specs []Specialization) (ok []Institution, unresolved []ExportRow) {
	byName := make(map[string]int, len(specs))
	for _, sp := range specs {
		byName[sp.Name] = sp.ID
	}
	for _, r := range rows {
		id, found := byName[r.Specialization]
		if !found {
			unresolved = append(unresolved, r)
			continue
		}
		ok = append(ok, Institution{
			Name:             r.Name,
			City:             r.City,
			ScoreMin:         r.ScoreMin,
			ScoreMax:         r.ScoreMax,
			URL:              r.URL,
			SpecializationID: id,
		})
	}
	return ok, unresolved
}

// ReadFile loads a previously exported dataset.
func ReadFile(path string) ([]ExportRow, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []ExportRow
	if err := json.Unmarshal(buf, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
