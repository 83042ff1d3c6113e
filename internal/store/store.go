package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golden_pages/internal/config"
	"golden_pages/internal/models"
)

var ErrNoRecords = errors.New("no records to save")

// SaveJSON writes records as an indented JSON array, replacing the file.
func SaveJSON(path string, records []models.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func LoadJSON(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// SaveCSV writes records to path. mode is config.CSVModeOverwrite or
// config.CSVModeAppend; header controls whether the column row is written.
func SaveCSV(path string, records []models.Record, mode string, header bool) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	flags := os.O_CREATE | os.O_WRONLY
	switch mode {
	case config.CSVModeAppend:
		flags |= os.O_APPEND
	case config.CSVModeOverwrite, "":
		flags |= os.O_TRUNC
	default:
		return fmt.Errorf("unknown csv mode %q", mode)
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if header {
		w.Write(models.RecordFields)
	}
	for _, r := range records {
		w.Write(r.Values())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
