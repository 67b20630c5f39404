package store

import (
	"context"
	"fmt"

	"github.com/gerenciadormu/painel/internal/model"
)

const suporteAppend = "SUPORTE!A:E"

type SuporteStore struct {
	rows RowAPI
}

func NewSuporteStore(rows RowAPI) *SuporteStore {
	return &SuporteStore{rows: rows}
}

func (s *SuporteStore) Add(ctx context.Context, t model.Suporte) error {
	row := []string{t.Data, t.UsuarioPai, t.Assunto, t.Descricao, t.Contato}
	if err := s.rows.Append(ctx, suporteAppend, row); err != nil {
		return fmt.Errorf("registrar suporte: %w", err)
	}
	return nil
}
