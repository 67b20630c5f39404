package recon

import "testing"

func TestParseNotification(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		wantID string
		wantOK bool
	}{
		{
			name:   "webhook type payment",
			body:   `{"type":"payment","data":{"id":"12345"}}`,
			wantID: "12345",
			wantOK: true,
		},
		{
			name:   "webhook numeric id",
			body:   `{"type":"payment","data":{"id":12345}}`,
			wantID: "12345",
			wantOK: true,
		},
		{
			name:   "action payment.updated",
			body:   `{"action":"payment.updated","data":{"id":"67"}}`,
			wantID: "67",
			wantOK: true,
		},
		{
			name:   "action payment.created",
			body:   `{"action":"payment.created","data":{"id":"68"}}`,
			wantID: "68",
			wantOK: true,
		},
		{
			name:   "legacy IPN resource URL",
			body:   `{"topic":"payment","resource":"https://api.mercadopago.com/v1/payments/9876"}`,
			wantID: "9876",
			wantOK: true,
		},
		{
			name:   "legacy IPN bare id",
			body:   `{"topic":"payment","resource":"9876"}`,
			wantID: "9876",
			wantOK: true,
		},
		{
			name:   "merchant_order topic ignored",
			body:   `{"topic":"merchant_order","resource":"https://api.mercadopago.com/merchant_orders/111"}`,
			wantOK: false,
		},
		{
			name:   "payment without id",
			body:   `{"type":"payment","data":{}}`,
			wantOK: false,
		},
		{
			name:   "not json",
			body:   `lixo total`,
			wantOK: false,
		},
		{
			name:   "empty object",
			body:   `{}`,
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseNotification([]byte(tc.body))
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if id != tc.wantID {
				t.Errorf("id = %q, want %q", id, tc.wantID)
			}
		})
	}
}
