package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gerenciadormu/painel/internal/format"
	"github.com/gerenciadormu/painel/internal/gateway"
	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/planos"
	"github.com/gerenciadormu/painel/internal/store"
)

// emailSuporte is the payer-email fallback of last resort: the gateway
// requires a payer email but child profiles may not have one.
const emailSuporte = "suporte@gerenciadormu.com.br"

// PaymentGateway is everything the payment handlers need from the gateway
// client.
type PaymentGateway interface {
	CreatePix(ctx context.Context, req gateway.PaymentRequest) (*gateway.Payment, error)
	CreateBoleto(ctx context.Context, req gateway.PaymentRequest) (*gateway.Payment, error)
	CreateCard(ctx context.Context, req gateway.CardRequest) (*gateway.Payment, error)
	CreatePreference(ctx context.Context, req gateway.PreferenceRequest) (*gateway.CheckoutPreference, error)
	Get(ctx context.Context, id string) (*gateway.Payment, error)
	Cancel(ctx context.Context, id string) error
	SearchPending(ctx context.Context, externalReference string) ([]gateway.Payment, error)
}

type PagamentoHandler struct {
	gw         PaymentGateway
	usuarios   *store.UsuarioStore
	pagamentos *store.PagamentoStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewPagamentoHandler(gw PaymentGateway, usuarios *store.UsuarioStore, pagamentos *store.PagamentoStore, logger *slog.Logger) *PagamentoHandler {
	return &PagamentoHandler{
		gw:         gw,
		usuarios:   usuarios,
		pagamentos: pagamentos,
		logger:     logger,
		now:        time.Now,
	}
}

func descricaoPlano(p model.Plano) string {
	return "Gerenciador MU - Plano " + p.Nome
}

// externalRef is unique by construction: account, plan and the creation
// instant in epoch millis.
func externalRef(userID, planoID string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%d", userID, planoID, t.UnixMilli())
}

// metadataPlano is the only channel by which an approved payment is later
// tied back to an account and plan.
func metadataPlano(u *model.Usuario, p model.Plano) map[string]any {
	return map[string]any{
		"user_id":    u.ID,
		"user_name":  u.Usuario,
		"plano_id":   p.ID,
		"plano_nome": p.Nome,
		"plano_dias": p.Dias,
	}
}

// resolvePayer builds the payer for a payment. Child profiles often have no
// email; fall back to the parent row's, then to the support address.
func (h *PagamentoHandler) resolvePayer(ctx context.Context, u *model.Usuario) gateway.Payer {
	email := u.Email
	nome := u.Nome
	if nome == "" {
		nome = u.UsuarioPai
	}
	if email == "" && u.UsuarioPai != "" {
		if pai, err := h.usuarios.GetPai(ctx, u.UsuarioPai); err == nil && pai != nil && pai.Email != "" {
			email = pai.Email
			if pai.Nome != "" {
				nome = pai.Nome
			}
		}
	}
	if email == "" {
		email = emailSuporte
	}
	if nome == "" {
		nome = "Usuário"
	}
	return gateway.Payer{Email: email, Nome: nome}
}

// resolvePlanoUsuario validates the shared {planoId, userId} pair.
func (h *PagamentoHandler) resolvePlanoUsuario(w http.ResponseWriter, r *http.Request, planoID, userID string) (model.Plano, *model.Usuario, bool) {
	plano, ok := planos.ByID(planoID)
	if !ok {
		writeError(w, http.StatusNotFound, "Plano não encontrado")
		return model.Plano{}, nil, false
	}
	usuario, err := h.usuarios.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("buscar usuário do pagamento", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return model.Plano{}, nil, false
	}
	if usuario == nil {
		writeError(w, http.StatusNotFound, "Usuário não encontrado")
		return model.Plano{}, nil, false
	}
	return plano, usuario, true
}

// CriarPix creates an instant-transfer intent and records it as pending.
func (h *PagamentoHandler) CriarPix(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanoID string `json:"planoId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanoID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Dados incompletos")
		return
	}
	plano, usuario, ok := h.resolvePlanoUsuario(w, r, req.PlanoID, req.UserID)
	if !ok {
		return
	}

	p, err := h.gw.CreatePix(r.Context(), gateway.PaymentRequest{
		Valor:             plano.Preco,
		Descricao:         descricaoPlano(plano),
		Payer:             h.resolvePayer(r.Context(), usuario),
		ExternalReference: externalRef(usuario.ID, plano.ID, h.now()),
		Metadata:          metadataPlano(usuario, plano),
	})
	if err != nil {
		h.logger.Error("criar pagamento pix", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar pagamento PIX")
		return
	}

	if err := h.registrarPendente(r.Context(), usuario.ID, p.ID, plano.Preco, "PIX"); err != nil {
		h.logger.Error("registrar pagamento pix", "pagamento", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar pagamento PIX")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":           p.ID,
		"status":       p.Status,
		"qrCode":       p.QRCode,
		"qrCodeBase64": p.QRCodeBase64,
		"ticketUrl":    p.TicketURL,
	})
}

// CriarBoleto creates a bank-slip intent. The gateway demands a CPF here.
func (h *PagamentoHandler) CriarBoleto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanoID string `json:"planoId"`
		UserID  string `json:"userId"`
		CPF     string `json:"cpf"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanoID == "" || req.UserID == "" || req.CPF == "" {
		writeError(w, http.StatusBadRequest, "Dados incompletos (planoId, userId, cpf)")
		return
	}
	plano, usuario, ok := h.resolvePlanoUsuario(w, r, req.PlanoID, req.UserID)
	if !ok {
		return
	}

	payer := h.resolvePayer(r.Context(), usuario)
	payer.CPF = format.SoDigitos(req.CPF)

	p, err := h.gw.CreateBoleto(r.Context(), gateway.PaymentRequest{
		Valor:             plano.Preco,
		Descricao:         descricaoPlano(plano),
		Payer:             payer,
		ExternalReference: externalRef(usuario.ID, plano.ID, h.now()),
		Metadata:          metadataPlano(usuario, plano),
	})
	if err != nil {
		h.logger.Error("criar boleto", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar boleto")
		return
	}

	if err := h.registrarPendente(r.Context(), usuario.ID, p.ID, plano.Preco, "Boleto"); err != nil {
		h.logger.Error("registrar boleto", "pagamento", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar boleto")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        p.ID,
		"status":    p.Status,
		"boletoUrl": p.BoletoURL,
	})
}

// CriarCartao charges a tokenized card. Cards can approve synchronously; in
// that case the ledger row is recorded already approved and the plan is
// applied inline. The later webhook then finds the row approved and does
// not extend again.
func (h *PagamentoHandler) CriarCartao(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		PlanoID         string `json:"planoId"`
		UserID          string `json:"userId"`
		Installments    int    `json:"installments"`
		PaymentMethodID string `json:"paymentMethodId"`
		IssuerID        string `json:"issuerId"`
		Email           string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.PlanoID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Dados incompletos")
		return
	}
	plano, usuario, ok := h.resolvePlanoUsuario(w, r, req.PlanoID, req.UserID)
	if !ok {
		return
	}

	payer := h.resolvePayer(r.Context(), usuario)
	if req.Email != "" {
		payer.Email = req.Email
	}

	p, err := h.gw.CreateCard(r.Context(), gateway.CardRequest{
		Valor:             plano.Preco,
		Descricao:         descricaoPlano(plano),
		Token:             req.Token,
		Installments:      req.Installments,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Payer:             payer,
		ExternalReference: externalRef(usuario.ID, plano.ID, h.now()),
		Metadata:          metadataPlano(usuario, plano),
	})
	if err != nil {
		h.logger.Error("processar cartão", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao processar pagamento")
		return
	}

	if p.Status == "approved" {
		reg := model.Pagamento{
			IDUsuario:     usuario.ID,
			IDPagamento:   p.ID,
			DataPagamento: format.DataBR(h.now()),
			Valor:         format.Moeda(plano.Preco),
			Metodo:        "Cartão de Crédito",
			Status:        model.StatusAprovado,
		}
		if err := h.pagamentos.Add(r.Context(), reg); err != nil {
			h.logger.Error("registrar cartão aprovado", "pagamento", p.ID, "error", err)
		}
		expira := format.DataBR(h.now().AddDate(0, 0, plano.Dias))
		if _, err := h.usuarios.UpdatePlano(r.Context(), usuario.ID, plano.Nome, expira); err != nil {
			h.logger.Error("aplicar plano do cartão", "pagamento", p.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":           p.ID,
		"status":       p.Status,
		"statusDetail": p.StatusDetail,
	})
}

// CriarPreferencia creates a redirect-checkout preference. Nothing is
// recorded locally; the ledger row appears when the webhook observes the
// payment.
func (h *PagamentoHandler) CriarPreferencia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanoID string `json:"planoId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanoID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Plano e usuário são obrigatórios")
		return
	}
	plano, usuario, ok := h.resolvePlanoUsuario(w, r, req.PlanoID, req.UserID)
	if !ok {
		return
	}

	pref, err := h.gw.CreatePreference(r.Context(), gateway.PreferenceRequest{
		PlanoID:           plano.ID,
		Titulo:            descricaoPlano(plano),
		Descricao:         plano.Descricao,
		Preco:             plano.Preco,
		Payer:             h.resolvePayer(r.Context(), usuario),
		ExternalReference: externalRef(usuario.ID, plano.ID, h.now()),
		Metadata:          metadataPlano(usuario, plano),
	})
	if err != nil {
		h.logger.Error("criar preferência", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao criar pagamento")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"preferenceId":     pref.ID,
		"initPoint":        pref.InitPoint,
		"sandboxInitPoint": pref.SandboxInitPoint,
	})
}

func (h *PagamentoHandler) registrarPendente(ctx context.Context, idUsuario, idPagamento string, valor float64, metodo string) error {
	return h.pagamentos.Add(ctx, model.Pagamento{
		IDUsuario:     idUsuario,
		IDPagamento:   idPagamento,
		DataPagamento: format.DataBR(h.now()),
		Valor:         format.Moeda(valor),
		Metodo:        metodo,
		Status:        model.StatusPendente,
	})
}

// Detalhes returns the live gateway view of one payment, with the
// method-specific fields the painel renders (PIX QR code, boleto URL).
func (h *PagamentoHandler) Detalhes(w http.ResponseWriter, r *http.Request) {
	p, err := h.gw.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Warn("detalhes do pagamento", "error", err)
		writeError(w, http.StatusNotFound, "Pagamento não encontrado")
		return
	}

	resp := map[string]any{
		"id":          p.ID,
		"status":      p.Status,
		"metodo":      p.PaymentMethodID,
		"valor":       p.Valor,
		"dataCriacao": dataCriacao(p),
		"planoNome":   planoNomeDoMetadata(p),
	}
	if p.PaymentMethodID == "pix" {
		resp["pixQrCode"] = p.QRCode
		resp["pixQrCodeBase64"] = p.QRCodeBase64
		resp["pixTicketUrl"] = p.TicketURL
	}
	if p.PaymentTypeID == "ticket" {
		resp["boletoUrl"] = p.BoletoURL
	}
	writeJSON(w, http.StatusOK, resp)
}

// Pendentes searches the gateway for still-pending payments across every
// child of a parent account. Children with no payments are skipped.
func (h *PagamentoHandler) Pendentes(w http.ResponseWriter, r *http.Request) {
	usuarioPai := r.URL.Query().Get("usuarioPai")
	if usuarioPai == "" {
		writeError(w, http.StatusBadRequest, "usuarioPai é obrigatório")
		return
	}

	filhos, err := h.usuarios.ListFilhos(r.Context(), usuarioPai)
	if err != nil {
		h.logger.Error("listar filhos", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}

	pendentes := []map[string]any{}
	for _, filho := range filhos {
		encontrados, err := h.gw.SearchPending(r.Context(), filho.ID)
		if err != nil {
			h.logger.Warn("buscar pendentes", "usuario", filho.ID, "error", err)
			continue
		}
		for _, p := range encontrados {
			item := map[string]any{
				"id":          p.ID,
				"idUsuario":   filho.ID,
				"usuario":     filho.Usuario,
				"status":      p.Status,
				"valor":       p.Valor,
				"metodo":      p.PaymentMethodID,
				"dataCriacao": dataCriacao(&p),
				"planoNome":   planoNomeDoMetadata(&p),
			}
			if p.PaymentMethodID == "pix" {
				item["pixQrCode"] = p.QRCode
				item["pixQrCodeBase64"] = p.QRCodeBase64
				item["pixTicketUrl"] = p.TicketURL
			}
			pendentes = append(pendentes, item)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"pendentes": pendentes})
}

// Cancelar cancels at the gateway, then marks the local row. The two writes
// are not atomic; a failure in between leaves the ledger stale until the
// next sync.
func (h *PagamentoHandler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.gw.Cancel(r.Context(), id); err != nil {
		h.logger.Error("cancelar pagamento", "pagamento", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao cancelar pagamento")
		return
	}
	if _, _, err := h.pagamentos.UpdateStatus(r.Context(), id, model.StatusCancelado); err != nil {
		h.logger.Error("marcar pagamento cancelado", "pagamento", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao cancelar pagamento")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListByUsuario returns the local ledger rows of an account.
func (h *PagamentoHandler) ListByUsuario(w http.ResponseWriter, r *http.Request) {
	pagamentos, err := h.pagamentos.ListByUsuario(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("listar pagamentos", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pagamentos": pagamentos})
}

func dataCriacao(p *gateway.Payment) string {
	if p.DateCreated.IsZero() {
		return ""
	}
	return p.DateCreated.Format(time.RFC3339)
}

func planoNomeDoMetadata(p *gateway.Payment) string {
	if p.Metadata == nil {
		return ""
	}
	if nome, ok := p.Metadata["plano_nome"].(string); ok {
		return nome
	}
	return ""
}
