// Package storetest provides an in-memory stand-in for the spreadsheet row
// API, so stores and everything above them can be tested without Google
// credentials.
package storetest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Fake keeps one slice of rows per sheet. Row 2 of the spreadsheet maps to
// index 0, matching how the stores address ranges.
type Fake struct {
	mu     sync.Mutex
	tables map[string][][]string

	appends int
	updates int
}

func New() *Fake {
	return &Fake{tables: make(map[string][][]string)}
}

// Seed loads initial rows into a sheet.
func (f *Fake) Seed(sheet string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.tables[sheet] = append(f.tables[sheet], append([]string(nil), row...))
	}
}

// Table returns a copy of a sheet's rows.
func (f *Fake) Table(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.tables[sheet]))
	for i, row := range f.tables[sheet] {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Writes reports how many append/update calls were made.
func (f *Fake) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appends + f.updates
}

func (f *Fake) Rows(_ context.Context, readRange string) ([][]string, error) {
	sheet, _, err := splitRange(readRange)
	if err != nil {
		return nil, err
	}
	return f.Table(sheet), nil
}

func (f *Fake) Append(_ context.Context, rng string, row []string) error {
	sheet, _, err := splitRange(rng)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[sheet] = append(f.tables[sheet], append([]string(nil), row...))
	f.appends++
	return nil
}

func (f *Fake) Update(_ context.Context, rng string, row []string) error {
	sheet, ref, err := splitRange(rng)
	if err != nil {
		return err
	}
	col, rowNum, err := parseCell(strings.SplitN(ref, ":", 2)[0])
	if err != nil {
		return err
	}
	idx := rowNum - 2
	f.mu.Lock()
	defer f.mu.Unlock()
	table := f.tables[sheet]
	if idx < 0 || idx >= len(table) {
		return fmt.Errorf("storetest: linha %d fora da tabela %s", rowNum, sheet)
	}
	for i, v := range row {
		for len(table[idx]) <= col+i {
			table[idx] = append(table[idx], "")
		}
		table[idx][col+i] = v
	}
	f.updates++
	return nil
}

func splitRange(rng string) (sheet, ref string, err error) {
	i := strings.IndexByte(rng, '!')
	if i < 0 {
		return "", "", fmt.Errorf("storetest: range sem aba: %q", rng)
	}
	return rng[:i], rng[i+1:], nil
}

// parseCell turns "C7" into (2, 7). Column letters beyond Z never occur in
// this schema.
func parseCell(ref string) (col, row int, err error) {
	if ref == "" || ref[0] < 'A' || ref[0] > 'Z' {
		return 0, 0, fmt.Errorf("storetest: célula inválida: %q", ref)
	}
	col = int(ref[0] - 'A')
	digits := ref[1:]
	if digits == "" {
		return col, 2, nil
	}
	row, err = strconv.Atoi(digits)
	if err != nil {
		return 0, 0, fmt.Errorf("storetest: célula inválida: %q", ref)
	}
	return col, row, nil
}
