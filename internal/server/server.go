// Package server wires the stores, the reconciliation engine and the HTTP
// handlers into one router.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gerenciadormu/painel/internal/handler"
	"github.com/gerenciadormu/painel/internal/middleware"
	"github.com/gerenciadormu/painel/internal/recon"
	"github.com/gerenciadormu/painel/internal/store"
)

type Config struct {
	BaseURL       string
	WebhookSecret string
}

type Server struct {
	authH      *handler.AuthHandler
	usuarioH   *handler.UsuarioHandler
	planoH     *handler.PlanoHandler
	pagamentoH *handler.PagamentoHandler
	webhookH   *handler.WebhookHandler
	authmacH   *handler.AuthMacHandler
	historicoH *handler.HistoricoHandler
	suporteH   *handler.SuporteHandler

	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(rows store.RowAPI, gw handler.PaymentGateway, cfg Config, logger *slog.Logger) *Server {
	usuarios := store.NewUsuarioStore(rows)
	pagamentos := store.NewPagamentoStore(rows)
	authmacs := store.NewAuthMacStore(rows)
	historico := store.NewHistoricoStore(rows)
	suporte := store.NewSuporteStore(rows)

	engine := recon.NewEngine(gw, usuarios, pagamentos, logger.With("component", "recon"))

	return &Server{
		authH:       handler.NewAuthHandler(usuarios, logger.With("component", "auth")),
		usuarioH:    handler.NewUsuarioHandler(usuarios, logger.With("component", "usuario")),
		planoH:      handler.NewPlanoHandler(),
		pagamentoH:  handler.NewPagamentoHandler(gw, usuarios, pagamentos, logger.With("component", "pagamento")),
		webhookH:    handler.NewWebhookHandler(engine, cfg.WebhookSecret, logger.With("component", "webhook")),
		authmacH:    handler.NewAuthMacHandler(authmacs, usuarios, logger.With("component", "authmac")),
		historicoH:  handler.NewHistoricoHandler(historico, logger.With("component", "historico")),
		suporteH:    handler.NewSuporteHandler(suporte, logger.With("component", "suporte")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter exposes the limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthCheck)

	mux.HandleFunc("POST /auth/login", s.rateLimited(s.authH.Login))

	mux.HandleFunc("POST /usuarios", s.usuarioH.Create)
	mux.HandleFunc("GET /usuarios/{id}", s.usuarioH.Get)
	mux.HandleFunc("PUT /usuarios/{id}", s.usuarioH.Update)
	mux.HandleFunc("GET /usuarios/pai/{usuarioPai}", s.usuarioH.ListByPai)

	mux.HandleFunc("GET /planos", s.planoH.List)

	mux.HandleFunc("POST /pagamento/pix", s.pagamentoH.CriarPix)
	mux.HandleFunc("POST /pagamento/boleto", s.pagamentoH.CriarBoleto)
	mux.HandleFunc("POST /pagamento/cartao", s.pagamentoH.CriarCartao)
	mux.HandleFunc("POST /pagamento/criar", s.pagamentoH.CriarPreferencia)
	mux.HandleFunc("GET /pagamento/pendentes", s.pagamentoH.Pendentes)
	mux.HandleFunc("GET /pagamento/{id}/detalhes", s.pagamentoH.Detalhes)
	mux.HandleFunc("POST /pagamento/{id}/cancelar", s.pagamentoH.Cancelar)
	mux.HandleFunc("POST /pagamento/{id}/sincronizar", s.webhookH.Sincronizar)

	// Gateway push plus its GET twin for URL validation and manual sync.
	mux.HandleFunc("POST /pagamento/webhook", s.webhookH.Receive)
	mux.HandleFunc("GET /pagamento/webhook", s.webhookH.SyncManual)

	mux.HandleFunc("GET /pagamentos/{id}", s.pagamentoH.ListByUsuario)

	mux.HandleFunc("GET /authmac/{usuarioPai}", s.authmacH.ListByPai)
	mux.HandleFunc("PUT /authmac/status", s.authmacH.UpdateStatus)

	mux.HandleFunc("GET /historico/{usuario}", s.historicoH.ListByUsuario)

	mux.HandleFunc("POST /suporte", s.rateLimited(s.suporteH.Create))

	return middleware.RequestLogger(s.logger)(mux)
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
