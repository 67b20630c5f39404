package model

// Usuario is one row of the USUÁRIOS table. A row with an empty Usuario
// field is a parent account (the login/billing identity); rows with a
// non-empty Usuario are in-game profiles owned by the parent named in
// UsuarioPai.
type Usuario struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Usuario    string `json:"usuario"`
	Email      string `json:"email"`
	Plano      string `json:"plano"`
	Expira     string `json:"expira"`
	Whatsapp   string `json:"whatsapp"`
	UsuarioPai string `json:"usuarioPai"`
}

// Parent reports whether the row is a parent account rather than a profile.
func (u Usuario) Parent() bool {
	return u.Usuario == ""
}

// Pagamento mirrors one gateway payment in the PAGAMENTOS ledger.
type Pagamento struct {
	IDUsuario         string `json:"idUsuario"`
	IDPagamento       string `json:"idPagamento"`
	DataPagamento     string `json:"dataPagamento"`
	Valor             string `json:"valor"`
	Metodo            string `json:"metodo"`
	Status            string `json:"status"`
	ExternalReference string `json:"externalReference,omitempty"`
}

// Ledger statuses. The status column is free text; gateway-native strings
// can appear for payments never touched by this system.
const (
	StatusPendente  = "Pendente"
	StatusAprovado  = "Aprovado"
	StatusCancelado = "Cancelado"
	StatusRecusado  = "Recusado"
)

// Plano is a purchasable subscription tier.
type Plano struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco"`
	Dias      int     `json:"dias"`
}

// AuthMac is a device authorization row. Rows are addressed by their
// spreadsheet position, not a logical key.
type AuthMac struct {
	RowIndex int    `json:"rowIndex"`
	Usuario  string `json:"usuario"`
	Mac      string `json:"mac"`
	Status   string `json:"status"`
}

const (
	MacAutorizado    = "Autorizado"
	MacNaoAutorizado = "Não Autorizado"
)

// HistoricoLogin is an append-only login record written by the game server.
type HistoricoLogin struct {
	Horario string `json:"horario"`
	Usuario string `json:"usuario"`
	IP      string `json:"ip"`
	Mac     string `json:"mac"`
}

// Suporte is a support ticket row.
type Suporte struct {
	Data       string `json:"data"`
	UsuarioPai string `json:"usuarioPai"`
	Assunto    string `json:"assunto"`
	Descricao  string `json:"descricao"`
	Contato    string `json:"contato"`
}
