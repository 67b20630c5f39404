// Package format renders values the way the spreadsheet and the painel
// expect them: Brazilian currency and dd/mm/yyyy dates.
package format

import (
	"strconv"
	"strings"
	"time"
)

// Moeda renders an amount as "R$ 29,90".
func Moeda(v float64) string {
	return "R$ " + strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// DataBR renders a pt-BR short date.
func DataBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// DataHoraBR renders a pt-BR date with time.
func DataHoraBR(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// SoDigitos strips everything but digits. CPF and whatsapp numbers arrive
// with punctuation and must be transmitted bare.
func SoDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
