// Package sheets talks to the Google spreadsheet that backs every table of
// the system. All access goes through value ranges; there are no
// transactions and no constraints on the remote side.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

type Config struct {
	SpreadsheetID string
	// CredentialsJSON takes precedence over CredentialsFile when both are set.
	CredentialsJSON string
	CredentialsFile string
}

// Client is a process-wide handle to the spreadsheet. It is safe for
// concurrent use; the underlying service keeps its own HTTP client.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New builds the client. It fails when the spreadsheet id or the service
// account credentials are missing so that a misconfigured process never
// starts half-working.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: GOOGLE_SHEETS_ID não configurado")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, errors.New("sheets: credenciais do Google não configuradas")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: criar serviço: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Rows reads a value range and returns it as strings. Short rows are
// returned as-is; callers index defensively.
func (c *Client) Rows(ctx context.Context, readRange string) ([][]string, error) {
	res, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: ler %s: %w", readRange, err)
	}
	rows := make([][]string, 0, len(res.Values))
	for _, raw := range res.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds one row after the last non-empty row of the range.
func (c *Client) Append(ctx context.Context, rng string, row []string) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: inserir em %s: %w", rng, err)
	}
	return nil
}

// Update overwrites the cells of the given range in place.
func (c *Client) Update(ctx context.Context, rng string, row []string) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: atualizar %s: %w", rng, err)
	}
	return nil
}

func valueRange(row []string) *sheets.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheets.ValueRange{Values: [][]interface{}{cells}}
}
