package store

import (
	"context"
	"fmt"

	"github.com/gerenciadormu/painel/internal/model"
)

const (
	pagamentosRead   = "PAGAMENTOS!A2:G"
	pagamentosAppend = "PAGAMENTOS!A:G"
)

type PagamentoStore struct {
	rows RowAPI
}

func NewPagamentoStore(rows RowAPI) *PagamentoStore {
	return &PagamentoStore{rows: rows}
}

func pagamentoFromRow(row []string) model.Pagamento {
	return model.Pagamento{
		IDUsuario:         cell(row, 0),
		IDPagamento:       cell(row, 1),
		DataPagamento:     cell(row, 2),
		Valor:             cell(row, 3),
		Metodo:            cell(row, 4),
		Status:            cell(row, 5),
		ExternalReference: cell(row, 6),
	}
}

// Add appends a ledger row. Uniqueness per gateway payment id is not
// enforced here; callers use UpdateStatus first (find-or-append).
func (s *PagamentoStore) Add(ctx context.Context, p model.Pagamento) error {
	row := []string{p.IDUsuario, p.IDPagamento, p.DataPagamento, p.Valor, p.Metodo, p.Status, p.ExternalReference}
	if err := s.rows.Append(ctx, pagamentosAppend, row); err != nil {
		return fmt.Errorf("inserir pagamento: %w", err)
	}
	return nil
}

// ListByUsuario returns the ledger rows owned by an account id.
func (s *PagamentoStore) ListByUsuario(ctx context.Context, idUsuario string) ([]model.Pagamento, error) {
	rows, err := s.rows.Rows(ctx, pagamentosRead)
	if err != nil {
		return nil, fmt.Errorf("listar pagamentos: %w", err)
	}
	out := []model.Pagamento{}
	for _, row := range rows {
		if cell(row, 0) == idUsuario {
			out = append(out, pagamentoFromRow(row))
		}
	}
	return out, nil
}

// UpdateStatus rewrites the status cell of the row matching a gateway
// payment id and returns the status it held before, so callers can tell a
// real transition from a redelivery. found is false when no row matched.
func (s *PagamentoStore) UpdateStatus(ctx context.Context, idPagamento, status string) (prev string, found bool, err error) {
	rows, err := s.rows.Rows(ctx, pagamentosRead)
	if err != nil {
		return "", false, fmt.Errorf("listar pagamentos: %w", err)
	}
	for i, row := range rows {
		if cell(row, 1) != idPagamento {
			continue
		}
		prev = cell(row, 5)
		rng := fmt.Sprintf("PAGAMENTOS!F%d", i+2)
		if err := s.rows.Update(ctx, rng, []string{status}); err != nil {
			return "", false, fmt.Errorf("atualizar status do pagamento %s: %w", idPagamento, err)
		}
		return prev, true, nil
	}
	return "", false, nil
}
