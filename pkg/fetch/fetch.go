// Package fetch pulls records from public APIs (GitHub, OpenWeatherMap,
// CoinGecko) and flattens them into a tabular dataset ready for JSON or CSV
// export. Each fetch is a single call: failures are reported, never retried.
package fetch

import (
	"net/http"
	"time"
)

// 📊 Dataset is a flat table of fetched records. Columns fixes the export
// order; every row is keyed by column name.
type Dataset struct {
	Columns []string
	Rows    []map[string]string
}

// NewDataset creates a dataset with the given column order.
func NewDataset(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

// Append adds one record.
func (d *Dataset) Append(row map[string]string) {
	d.Rows = append(d.Rows, row)
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// defaultHTTPClient bounds every API call; the APIs used here answer well
// within this on a healthy network.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}
