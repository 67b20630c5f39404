package recon

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/gerenciadormu/painel/internal/format"
	"github.com/gerenciadormu/painel/internal/gateway"
	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store"
	"github.com/gerenciadormu/painel/internal/store/storetest"
)

type fakeGateway struct {
	payments map[string]*gateway.Payment
	calls    int
}

func (g *fakeGateway) Get(_ context.Context, id string) (*gateway.Payment, error) {
	g.calls++
	p, ok := g.payments[id]
	if !ok {
		return nil, fmt.Errorf("pagamento %s não encontrado", id)
	}
	return p, nil
}

func setupEngine(t *testing.T, payments ...*gateway.Payment) (*Engine, *fakeGateway, *storetest.Fake) {
	t.Helper()
	fake := storetest.New()
	fake.Seed("USUÁRIOS",
		[]string{"2", "Ana Silva", "ana_char1", "ana@x.com", "Free", "", "", "contaAna"},
	)
	gw := &fakeGateway{payments: map[string]*gateway.Payment{}}
	for _, p := range payments {
		gw.payments[p.ID] = p
	}
	e := NewEngine(gw, store.NewUsuarioStore(fake), store.NewPagamentoStore(fake), slog.New(slog.DiscardHandler))
	e.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return e, gw, fake
}

func approvedPayment() *gateway.Payment {
	return &gateway.Payment{
		ID:                "777",
		Status:            "approved",
		Valor:             7.90,
		PaymentTypeID:     "pix",
		DateApproved:      time.Date(2026, 8, 30, 11, 55, 0, 0, time.UTC),
		ExternalReference: "2_semanal_1756550000000",
		Metadata: map[string]any{
			"user_id":    "2",
			"plano_nome": "Semanal",
			"plano_dias": float64(7),
		},
	}
}

func TestApplyApprovedAppendsAndExtends(t *testing.T) {
	e, _, fake := setupEngine(t, approvedPayment())

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Applied {
		t.Error("expected Applied on first delivery")
	}

	ledger := fake.Table("PAGAMENTOS")
	if len(ledger) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(ledger))
	}
	row := ledger[0]
	if row[0] != "2" || row[1] != "777" {
		t.Errorf("row = %v", row)
	}
	if row[3] != "R$ 7,90" {
		t.Errorf("valor = %q, want %q", row[3], "R$ 7,90")
	}
	if row[4] != "PIX" {
		t.Errorf("metodo = %q, want %q", row[4], "PIX")
	}
	if row[5] != model.StatusAprovado {
		t.Errorf("status = %q, want %q", row[5], model.StatusAprovado)
	}

	conta := fake.Table("USUÁRIOS")[0]
	if conta[4] != "Semanal" {
		t.Errorf("plano = %q, want %q", conta[4], "Semanal")
	}
	wantExpira := format.DataBR(time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC))
	if conta[5] != wantExpira {
		t.Errorf("expira = %q, want %q", conta[5], wantExpira)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	e, _, fake := setupEngine(t, approvedPayment())

	first, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if !first.Applied {
		t.Error("first delivery should extend the plan")
	}
	if second.Applied {
		t.Error("redelivery must not extend the plan again")
	}
	if n := len(fake.Table("PAGAMENTOS")); n != 1 {
		t.Errorf("ledger rows = %d, want exactly 1 after a redelivery", n)
	}
}

func TestApplyPendingLedgerRowTransitions(t *testing.T) {
	e, _, fake := setupEngine(t, approvedPayment())
	fake.Seed("PAGAMENTOS",
		[]string{"2", "777", "30/08/2026", "R$ 7,90", "PIX", "Pendente", "2_semanal_1756550000000"},
	)

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Applied {
		t.Error("a pending-to-approved transition must extend the plan")
	}
	ledger := fake.Table("PAGAMENTOS")
	if len(ledger) != 1 {
		t.Fatalf("ledger rows = %d, want 1 (updated in place, not appended)", len(ledger))
	}
	if ledger[0][5] != model.StatusAprovado {
		t.Errorf("status = %q, want %q", ledger[0][5], model.StatusAprovado)
	}
}

func TestApplyNonApprovedIsInformational(t *testing.T) {
	p := approvedPayment()
	p.Status = "pending"
	e, _, fake := setupEngine(t, p)

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Applied {
		t.Error("pending payments must not be applied")
	}
	if res.Status != "pending" {
		t.Errorf("status = %q, want %q", res.Status, "pending")
	}
	if fake.Writes() != 0 {
		t.Errorf("writes = %d, want 0", fake.Writes())
	}
}

func TestApplyMissingUserIDMutatesNothing(t *testing.T) {
	p := approvedPayment()
	p.Metadata = map[string]any{"plano_nome": "Semanal"}
	e, _, fake := setupEngine(t, p)

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.MissingUser {
		t.Error("expected MissingUser")
	}
	if res.Applied {
		t.Error("must not apply without an owner")
	}
	if fake.Writes() != 0 {
		t.Errorf("writes = %d, want 0", fake.Writes())
	}
}

func TestApplyUnknownUserStillRecordsLedgerRow(t *testing.T) {
	p := approvedPayment()
	p.Metadata["user_id"] = "999"
	e, _, fake := setupEngine(t, p)

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Applied {
		t.Error("no account to extend")
	}
	if n := len(fake.Table("PAGAMENTOS")); n != 1 {
		t.Errorf("ledger rows = %d, want 1 (the payment is still recorded)", n)
	}
}

func TestApplyMetadataDefaults(t *testing.T) {
	p := approvedPayment()
	p.Metadata = map[string]any{"user_id": "2"}
	e, _, fake := setupEngine(t, p)

	res, err := e.Apply(context.Background(), "777")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.Applied {
		t.Error("expected Applied")
	}
	conta := fake.Table("USUÁRIOS")[0]
	if conta[4] != "Premium" {
		t.Errorf("plano = %q, missing plano_nome defaults to Premium", conta[4])
	}
	wantExpira := format.DataBR(time.Date(2026, 9, 29, 12, 0, 0, 0, time.UTC))
	if conta[5] != wantExpira {
		t.Errorf("expira = %q, want %q (30-day default)", conta[5], wantExpira)
	}
}

func TestMetodoLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"credit_card", "Cartão de Crédito"},
		{"debit_card", "Cartão de Débito"},
		{"bank_transfer", "Transferência"},
		{"ticket", "Boleto"},
		{"account_money", "Mercado Pago"},
		{"pix", "PIX"},
		{"", "Mercado Pago"},
		{"atm", "atm"},
	}
	for _, tc := range cases {
		if got := MetodoLabel(tc.in); got != tc.want {
			t.Errorf("MetodoLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
