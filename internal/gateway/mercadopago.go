// Package gateway wraps the Mercado Pago SDK behind the handful of
// operations the painel needs: creating payment intents per method,
// fetching/cancelling/searching payments, and building redirect-checkout
// preferences.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type Config struct {
	AccessToken string
	// BaseURL is the public URL of this service, used for the checkout
	// back URLs and the webhook notification URL.
	BaseURL string
}

type Client struct {
	payments    payment.Client
	preferences preference.Client
	baseURL     string
}

func New(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, errors.New("mercadopago: MP_ACCESS_TOKEN não configurado")
	}
	mpCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: configurar cliente: %w", err)
	}
	return &Client{
		payments:    payment.NewClient(mpCfg),
		preferences: preference.NewClient(mpCfg),
		baseURL:     cfg.BaseURL,
	}, nil
}

// Payment is the subset of a gateway payment the rest of the system reads.
type Payment struct {
	ID                string
	Status            string
	StatusDetail      string
	Valor             float64
	PaymentMethodID   string
	PaymentTypeID     string
	DateCreated       time.Time
	DateApproved      time.Time
	ExternalReference string
	Metadata          map[string]any
	QRCode            string
	QRCodeBase64      string
	TicketURL         string
	BoletoURL         string
}

func fromResponse(res *payment.Response) *Payment {
	p := &Payment{
		ID:                strconv.Itoa(res.ID),
		Status:            res.Status,
		StatusDetail:      res.StatusDetail,
		Valor:             res.TransactionAmount,
		PaymentMethodID:   res.PaymentMethodID,
		PaymentTypeID:     res.PaymentTypeID,
		DateCreated:       res.DateCreated,
		DateApproved:      res.DateApproved,
		ExternalReference: res.ExternalReference,
		Metadata:          res.Metadata,
	}
	tx := res.PointOfInteraction.TransactionData
	p.QRCode = tx.QRCode
	p.QRCodeBase64 = tx.QRCodeBase64
	p.TicketURL = tx.TicketURL
	p.BoletoURL = res.TransactionDetails.ExternalResourceURL
	return p
}

// Payer identifies who the gateway should charge. CPF must already be
// digits-only.
type Payer struct {
	Email string
	Nome  string
	CPF   string
}

// PaymentRequest covers the async methods (PIX and boleto).
type PaymentRequest struct {
	Valor             float64
	Descricao         string
	Payer             Payer
	ExternalReference string
	Metadata          map[string]any
}

// CreatePix creates an instant-transfer payment intent.
func (c *Client) CreatePix(ctx context.Context, req PaymentRequest) (*Payment, error) {
	res, err := c.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Valor,
		Description:       req.Descricao,
		PaymentMethodID:   "pix",
		Payer: &payment.PayerRequest{
			Email:     req.Payer.Email,
			FirstName: primeiroNome(req.Payer.Nome),
		},
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: criar pagamento pix: %w", err)
	}
	return fromResponse(res), nil
}

// CreateBoleto creates a bank-slip payment intent. The gateway requires a
// CPF and a split first/last name for this method.
func (c *Client) CreateBoleto(ctx context.Context, req PaymentRequest) (*Payment, error) {
	first, last := splitNome(req.Payer.Nome)
	res, err := c.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Valor,
		Description:       req.Descricao,
		PaymentMethodID:   "bolbradesco",
		Payer: &payment.PayerRequest{
			Email:     req.Payer.Email,
			FirstName: first,
			LastName:  last,
			Identification: &payment.IdentificationRequest{
				Type:   "CPF",
				Number: req.Payer.CPF,
			},
		},
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: criar boleto: %w", err)
	}
	return fromResponse(res), nil
}

// CardRequest covers the tokenized card flow.
type CardRequest struct {
	Valor             float64
	Descricao         string
	Token             string
	Installments      int
	PaymentMethodID   string
	IssuerID          string
	Payer             Payer
	ExternalReference string
	Metadata          map[string]any
}

// CreateCard charges a tokenized card. Card payments can come back
// "approved" synchronously.
func (c *Client) CreateCard(ctx context.Context, req CardRequest) (*Payment, error) {
	installments := req.Installments
	if installments <= 0 {
		installments = 1
	}
	res, err := c.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Valor,
		Description:       req.Descricao,
		Token:             req.Token,
		Installments:      installments,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Payer: &payment.PayerRequest{
			Email: req.Payer.Email,
		},
		ExternalReference: req.ExternalReference,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: processar cartão: %w", err)
	}
	return fromResponse(res), nil
}

// Get fetches the full payment detail by gateway id.
func (c *Client) Get(ctx context.Context, id string) (*Payment, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: id de pagamento inválido %q", id)
	}
	res, err := c.payments.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: buscar pagamento %s: %w", id, err)
	}
	return fromResponse(res), nil
}

// Cancel cancels a pending payment at the gateway.
func (c *Client) Cancel(ctx context.Context, id string) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("mercadopago: id de pagamento inválido %q", id)
	}
	if _, err := c.payments.Cancel(ctx, n); err != nil {
		return fmt.Errorf("mercadopago: cancelar pagamento %s: %w", id, err)
	}
	return nil
}

// SearchPending lists still-pending payments carrying the given external
// reference prefix (the account id).
func (c *Client) SearchPending(ctx context.Context, externalReference string) ([]Payment, error) {
	res, err := c.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{
			"external_reference": externalReference,
			"status":             "pending",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: buscar pagamentos pendentes: %w", err)
	}
	out := []Payment{}
	for i := range res.Results {
		p := fromResponse(&res.Results[i])
		if p.Status != "pending" {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// PreferenceRequest builds a redirect-checkout preference for one plan.
type PreferenceRequest struct {
	PlanoID           string
	Titulo            string
	Descricao         string
	Preco             float64
	Payer             Payer
	ExternalReference string
	Metadata          map[string]any
}

// CheckoutPreference is the redirect data returned to the painel.
type CheckoutPreference struct {
	ID               string `json:"preferenceId"`
	InitPoint        string `json:"initPoint"`
	SandboxInitPoint string `json:"sandboxInitPoint,omitempty"`
}

// CreatePreference creates a redirect-checkout preference. The webhook at
// BaseURL receives the payment notification after the buyer pays.
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*CheckoutPreference, error) {
	res, err := c.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.PlanoID,
				Title:       req.Titulo,
				Description: req.Descricao,
				Quantity:    1,
				UnitPrice:   req.Preco,
				CurrencyID:  "BRL",
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.Payer.Nome,
			Email: req.Payer.Email,
		},
		Metadata: req.Metadata,
		BackURLs: &preference.BackURLsRequest{
			Success: c.baseURL + "/pagamento/resultado?status=success",
			Failure: c.baseURL + "/pagamento/resultado?status=failure",
			Pending: c.baseURL + "/pagamento/resultado?status=pending",
		},
		AutoReturn:        "approved",
		NotificationURL:   c.baseURL + "/pagamento/webhook",
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago: criar preferência: %w", err)
	}
	return &CheckoutPreference{
		ID:               res.ID,
		InitPoint:        res.InitPoint,
		SandboxInitPoint: res.SandboxInitPoint,
	}, nil
}

func primeiroNome(nome string) string {
	first, _ := splitNome(nome)
	return first
}

// splitNome separates a display name into the first/last pair the gateway
// wants; single names are repeated, the gateway rejects empty last names.
func splitNome(nome string) (first, last string) {
	parts := strings.Fields(nome)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) == 1 {
		return first, first
	}
	return first, strings.Join(parts[1:], " ")
}
