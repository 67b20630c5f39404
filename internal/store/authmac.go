package store

import (
	"context"
	"fmt"

	"github.com/gerenciadormu/painel/internal/model"
)

const authMacRead = "AUTHMAC!A2:C"

type AuthMacStore struct {
	rows RowAPI
}

func NewAuthMacStore(rows RowAPI) *AuthMacStore {
	return &AuthMacStore{rows: rows}
}

// List returns every device row with its 1-based spreadsheet position.
// Data starts at row 2; RowIndex is what UpdateStatus expects back.
func (s *AuthMacStore) List(ctx context.Context) ([]model.AuthMac, error) {
	rows, err := s.rows.Rows(ctx, authMacRead)
	if err != nil {
		return nil, fmt.Errorf("listar dispositivos: %w", err)
	}
	out := make([]model.AuthMac, 0, len(rows))
	for i, row := range rows {
		status := cell(row, 2)
		if status == "" {
			status = model.MacNaoAutorizado
		}
		out = append(out, model.AuthMac{
			RowIndex: i + 2,
			Usuario:  cell(row, 0),
			Mac:      cell(row, 1),
			Status:   status,
		})
	}
	return out, nil
}

// UpdateStatus writes only the status cell of the addressed row. Positional
// addressing means an external row deletion silently misdirects this write.
func (s *AuthMacStore) UpdateStatus(ctx context.Context, rowIndex int, status string) error {
	rng := fmt.Sprintf("AUTHMAC!C%d", rowIndex)
	if err := s.rows.Update(ctx, rng, []string{status}); err != nil {
		return fmt.Errorf("atualizar status do dispositivo: %w", err)
	}
	return nil
}
