// Package recon applies gateway payment observations to the local ledger
// and the owning account's plan. The same observation may arrive several
// times (webhook redelivery, manual poll, explicit sync); applying it must
// mutate state exactly once.
package recon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gerenciadormu/painel/internal/format"
	"github.com/gerenciadormu/painel/internal/gateway"
	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store"
)

// Gateway is the single call the engine needs from the payment provider.
type Gateway interface {
	Get(ctx context.Context, id string) (*gateway.Payment, error)
}

type Engine struct {
	gw         Gateway
	usuarios   *store.UsuarioStore
	pagamentos *store.PagamentoStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewEngine(gw Gateway, usuarios *store.UsuarioStore, pagamentos *store.PagamentoStore, logger *slog.Logger) *Engine {
	return &Engine{
		gw:         gw,
		usuarios:   usuarios,
		pagamentos: pagamentos,
		logger:     logger,
		now:        time.Now,
	}
}

// Result reports what applying an observation did.
type Result struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	PlanoNome string `json:"planoNome,omitempty"`
	PlanoDias int    `json:"planoDias,omitempty"`
	// Applied is true when this call extended the account's plan.
	Applied bool `json:"applied"`
	// MissingUser flags an approved payment whose metadata carries no
	// user_id; nothing is mutated for those.
	MissingUser bool `json:"-"`
}

// Apply fetches the payment from the gateway and reconciles the ledger and
// the account. Non-approved statuses are informational only. The ledger
// upsert is find-or-append keyed by the gateway payment id, and the plan is
// extended only when the row transitions into "Aprovado"; a redelivered
// approval finds the row already approved and changes nothing.
func (e *Engine) Apply(ctx context.Context, paymentID string) (*Result, error) {
	p, err := e.gw.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("buscar pagamento %s: %w", paymentID, err)
	}

	res := &Result{PaymentID: p.ID, Status: p.Status}
	if p.Status != "approved" {
		e.logger.Info("pagamento ainda não aprovado", "pagamento", p.ID, "status", p.Status)
		return res, nil
	}

	userID := metaString(p.Metadata, "user_id")
	planoNome := metaString(p.Metadata, "plano_nome")
	dias := metaInt(p.Metadata, "plano_dias", 30)
	res.UserID = userID
	res.PlanoNome = planoNome
	res.PlanoDias = dias

	if userID == "" {
		// Foreign or malformed payment; never fabricate an account.
		res.MissingUser = true
		e.logger.Error("pagamento aprovado sem user_id no metadata", "pagamento", p.ID)
		return res, nil
	}

	prev, found, err := e.pagamentos.UpdateStatus(ctx, p.ID, model.StatusAprovado)
	if err != nil {
		return nil, fmt.Errorf("atualizar pagamento %s: %w", p.ID, err)
	}
	if !found {
		reg := model.Pagamento{
			IDUsuario:         userID,
			IDPagamento:       p.ID,
			DataPagamento:     format.DataBR(e.approvedAt(p)),
			Valor:             format.Moeda(p.Valor),
			Metodo:            MetodoLabel(p.PaymentTypeID),
			Status:            model.StatusAprovado,
			ExternalReference: p.ExternalReference,
		}
		if err := e.pagamentos.Add(ctx, reg); err != nil {
			return nil, fmt.Errorf("registrar pagamento %s: %w", p.ID, err)
		}
	}

	if found && prev == model.StatusAprovado {
		// Redelivery of an approval already applied.
		return res, nil
	}

	nome := planoNome
	if nome == "" {
		nome = "Premium"
	}
	expira := format.DataBR(e.now().AddDate(0, 0, dias))
	ok, err := e.usuarios.UpdatePlano(ctx, userID, nome, expira)
	if err != nil {
		return nil, fmt.Errorf("atualizar plano do usuário %s: %w", userID, err)
	}
	if !ok {
		e.logger.Warn("usuário do pagamento não encontrado", "pagamento", p.ID, "usuario", userID)
		return res, nil
	}

	res.Applied = true
	e.logger.Info("pagamento aprovado aplicado",
		"pagamento", p.ID, "usuario", userID, "plano", nome, "dias", dias)
	return res, nil
}

func (e *Engine) approvedAt(p *gateway.Payment) time.Time {
	if !p.DateApproved.IsZero() {
		return p.DateApproved
	}
	if !p.DateCreated.IsZero() {
		return p.DateCreated
	}
	return e.now()
}

// MetodoLabel maps a gateway payment type to the ledger's display label.
func MetodoLabel(paymentTypeID string) string {
	switch paymentTypeID {
	case "credit_card":
		return "Cartão de Crédito"
	case "debit_card":
		return "Cartão de Débito"
	case "bank_transfer":
		return "Transferência"
	case "ticket":
		return "Boleto"
	case "account_money":
		return "Mercado Pago"
	case "pix":
		return "PIX"
	case "":
		return "Mercado Pago"
	default:
		return paymentTypeID
	}
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return asString(m[key])
}

func metaInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}
