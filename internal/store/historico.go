package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/gerenciadormu/painel/internal/model"
)

const historicoRead = "Histórico!A2:D"

// HistoricoStore reads login history. The write path lives in the game
// server; this side never appends.
type HistoricoStore struct {
	rows RowAPI
}

func NewHistoricoStore(rows RowAPI) *HistoricoStore {
	return &HistoricoStore{rows: rows}
}

func (s *HistoricoStore) ListByUsuario(ctx context.Context, usuario string) ([]model.HistoricoLogin, error) {
	rows, err := s.rows.Rows(ctx, historicoRead)
	if err != nil {
		return nil, fmt.Errorf("listar histórico: %w", err)
	}
	out := []model.HistoricoLogin{}
	for _, row := range rows {
		if !strings.EqualFold(cell(row, 1), usuario) {
			continue
		}
		out = append(out, model.HistoricoLogin{
			Horario: cell(row, 0),
			Usuario: cell(row, 1),
			IP:      cell(row, 2),
			Mac:     cell(row, 3),
		})
	}
	return out, nil
}
