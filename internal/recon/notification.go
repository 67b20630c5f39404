package recon

import (
	"encoding/json"
	"regexp"
	"strconv"
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// notification accepts the three shapes Mercado Pago delivers:
//
//	{ "type": "payment", "data": { "id": "123" } }
//	{ "action": "payment.updated", "data": { "id": "123" } }
//	{ "topic": "payment", "resource": "/v1/payments/123" }
//
// Ids arrive as strings or numbers depending on the shape.
type notification struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Topic    string `json:"topic"`
	ID       any    `json:"id"`
	Resource any    `json:"resource"`
	Data     struct {
		ID any `json:"id"`
	} `json:"data"`
}

// ParseNotification extracts the payment id from a webhook body. ok is
// false for unparseable bodies, non-payment topics, and payment
// notifications that carry no id.
func ParseNotification(body []byte) (paymentID string, ok bool) {
	var n notification
	if err := json.Unmarshal(body, &n); err != nil {
		return "", false
	}

	isPayment := n.Type == "payment" ||
		n.Action == "payment.updated" ||
		n.Action == "payment.created" ||
		n.Topic == "payment"
	if !isPayment {
		return "", false
	}

	if id := asString(n.Data.ID); id != "" {
		return id, true
	}
	if id := asString(n.ID); id != "" {
		return id, true
	}
	// Legacy IPN: resource may be a URL or a bare id.
	if res := asString(n.Resource); res != "" {
		if m := trailingDigits.FindStringSubmatch(res); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
