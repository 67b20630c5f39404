// Package store implements the per-table repositories on top of the
// spreadsheet row API. Every lookup is a full-table linear scan; identifiers
// compare case-insensitively. Column order is fixed and positional;
// reordering columns in the spreadsheet breaks every reader.
package store

import "context"

// RowAPI is the narrow surface the stores need from the spreadsheet.
// *sheets.Client implements it in production; tests use an in-memory fake.
type RowAPI interface {
	Rows(ctx context.Context, readRange string) ([][]string, error)
	Append(ctx context.Context, rng string, row []string) error
	Update(ctx context.Context, rng string, row []string) error
}

// cell returns column i of a row, tolerating short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
