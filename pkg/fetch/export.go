package fetch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📤 Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// WriteJSON writes the dataset as an indented JSON array of objects.
func WriteJSON(w io.Writer, ds *Dataset) error {
	rows := ds.Rows
	if rows == nil {
		rows = []map[string]string{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(rows); err != nil {
		return errors.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteCSV writes the dataset as CSV, header first, columns in dataset order.
func WriteCSV(w io.Writer, ds *Dataset) error {
	if ds.Empty() {
		return errors.New("no data to export")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Columns); err != nil {
		return errors.Errorf("writing CSV header: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, column := range ds.Columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return errors.Errorf("writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// 💾 Export writes the dataset to path in the given format.
func Export(path string, format Format, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		err = WriteJSON(f, ds)
	case FormatCSV:
		err = WriteCSV(f, ds)
	default:
		err = errors.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("closing export file: %w", err)
	}
	return nil
}
