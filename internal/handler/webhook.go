package handler

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	"github.com/gerenciadormu/painel/internal/recon"
)

type WebhookHandler struct {
	engine *recon.Engine
	secret string
	logger *slog.Logger
}

func NewWebhookHandler(engine *recon.Engine, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{engine: engine, secret: secret, logger: logger}
}

// Receive is the gateway push entry point. It always acknowledges with 200
// {received:true}: the gateway retries on anything else, and retry storms
// against our own failures help nobody. Failures are only logged.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ack := func() {
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		h.logger.Error("webhook: ler corpo", "error", err)
		ack()
		return
	}

	paymentID, ok := recon.ParseNotification(body)
	if !ok {
		h.logger.Info("webhook ignorado", "body", string(body))
		ack()
		return
	}

	if _, err := h.engine.Apply(r.Context(), paymentID); err != nil {
		h.logger.Error("webhook: aplicar pagamento", "pagamento", paymentID, "error", err)
	}
	ack()
}

// SyncManual is the secret-gated poll: GET /pagamento/webhook?id=&secret=.
// A bare GET without id is the gateway's URL-validation ping. The secret is
// checked before any gateway call; an unconfigured secret rejects everything.
func (h *WebhookHandler) SyncManual(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	paymentID := q.Get("id")
	if paymentID == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if h.secret == "" || subtle.ConstantTimeCompare([]byte(q.Get("secret")), []byte(h.secret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Não autorizado")
		return
	}

	res, err := h.engine.Apply(r.Context(), paymentID)
	if err != nil {
		h.logger.Error("sync manual", "pagamento", paymentID, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao sincronizar pagamento")
		return
	}
	if res.Status != "approved" {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  res.Status,
			"message": "Pagamento não aprovado",
		})
		return
	}
	if res.MissingUser {
		writeError(w, http.StatusBadRequest, "user_id não encontrado no metadata")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"paymentId": res.PaymentID,
		"userId":    res.UserID,
		"planoNome": res.PlanoNome,
		"planoDias": res.PlanoDias,
		"applied":   res.Applied,
	})
}

// Sincronizar is the explicit reconciliation trigger behind the
// authenticated painel surface; no secret required.
func (h *WebhookHandler) Sincronizar(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("id")

	res, err := h.engine.Apply(r.Context(), paymentID)
	if err != nil {
		h.logger.Error("sincronizar", "pagamento", paymentID, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao sincronizar pagamento")
		return
	}
	if res.Status != "approved" {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  res.Status,
			"message": "Pagamento ainda não aprovado.",
		})
		return
	}
	if res.MissingUser {
		writeError(w, http.StatusBadRequest, "user_id não encontrado no metadata")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "approved",
		"userId":    res.UserID,
		"planoNome": res.PlanoNome,
		"planoDias": res.PlanoDias,
		"applied":   res.Applied,
	})
}
