package store

import (
	"context"
	"testing"

	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store/storetest"
)

func seedPagamentos(t *testing.T) (*PagamentoStore, *storetest.Fake) {
	t.Helper()
	fake := storetest.New()
	fake.Seed("PAGAMENTOS",
		[]string{"2", "111", "01/08/2026 10:00:00", "R$ 7,90", "Pix", "Pendente", "2_semanal_123"},
		[]string{"5", "222", "02/08/2026 11:30:00", "R$ 29,90", "Cartão de Crédito", "Aprovado", "5_mensal_456"},
	)
	return NewPagamentoStore(fake), fake
}

func TestPagamentoAdd(t *testing.T) {
	s, fake := seedPagamentos(t)

	err := s.Add(context.Background(), model.Pagamento{
		IDUsuario:         "2",
		IDPagamento:       "333",
		DataPagamento:     "03/08/2026 09:00:00",
		Valor:             "R$ 74,90",
		Metodo:            "Boleto",
		Status:            model.StatusPendente,
		ExternalReference: "2_trimestral_789",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	table := fake.Table("PAGAMENTOS")
	if len(table) != 3 {
		t.Fatalf("len = %d, want 3", len(table))
	}
	last := table[2]
	want := []string{"2", "333", "03/08/2026 09:00:00", "R$ 74,90", "Boleto", "Pendente", "2_trimestral_789"}
	for i := range want {
		if last[i] != want[i] {
			t.Errorf("col %d = %q, want %q", i, last[i], want[i])
		}
	}
}

func TestPagamentoListByUsuario(t *testing.T) {
	s, _ := seedPagamentos(t)

	ps, err := s.ListByUsuario(context.Background(), "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("len = %d, want 1", len(ps))
	}
	if ps[0].IDPagamento != "111" {
		t.Errorf("idPagamento = %q, want %q", ps[0].IDPagamento, "111")
	}
}

func TestPagamentoUpdateStatusReturnsPrevious(t *testing.T) {
	s, fake := seedPagamentos(t)

	prev, found, err := s.UpdateStatus(context.Background(), "111", model.StatusAprovado)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !found {
		t.Fatal("expected row to be found")
	}
	if prev != model.StatusPendente {
		t.Errorf("prev = %q, want %q", prev, model.StatusPendente)
	}

	row := fake.Table("PAGAMENTOS")[0]
	if row[5] != model.StatusAprovado {
		t.Errorf("status cell = %q, want %q", row[5], model.StatusAprovado)
	}
	// Only the status cell changes.
	if row[3] != "R$ 7,90" || row[6] != "2_semanal_123" {
		t.Errorf("row = %v, other cells must be preserved", row)
	}
}

func TestPagamentoUpdateStatusRedelivery(t *testing.T) {
	s, _ := seedPagamentos(t)

	prev, found, err := s.UpdateStatus(context.Background(), "222", model.StatusAprovado)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !found {
		t.Fatal("expected row to be found")
	}
	if prev != model.StatusAprovado {
		t.Errorf("prev = %q, want %q (already approved)", prev, model.StatusAprovado)
	}
}

func TestPagamentoUpdateStatusUnknownID(t *testing.T) {
	s, fake := seedPagamentos(t)

	_, found, err := s.UpdateStatus(context.Background(), "999", model.StatusAprovado)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
	if fake.Writes() != 0 {
		t.Errorf("writes = %d, want 0", fake.Writes())
	}
}
