package view

import (
	"strconv"
	"strings"
)

// FormatMoney renders an amount in minor units, e.g. 1000 EUR -> "€10.00".
// Integer arithmetic only: nothing is rounded below the currency's
// minor unit.
func FormatMoney(cents int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	digits := minorDigits(currency)
	var amount string
	if digits == 0 {
		amount = groupThousands(strconv.FormatInt(cents, 10))
	} else {
		div := int64(1)
		for i := 0; i < digits; i++ {
			div *= 10
		}
		frac := strconv.FormatInt(cents%div, 10)
		for len(frac) < digits {
			frac = "0" + frac
		}
		amount = groupThousands(strconv.FormatInt(cents/div, 10)) + "." + frac
	}

	if sym, ok := currencySymbol(currency); ok {
		return sign + sym + amount
	}
	if currency == "" {
		return sign + amount
	}
	return sign + amount + " " + currency
}

// MoneyFromCents is FormatMoney for int amounts.
func MoneyFromCents(cents int, currency string) string {
	return FormatMoney(int64(cents), currency)
}

func currencySymbol(code string) (string, bool) {
	switch code {
	case "EUR":
		return "€", true
	case "USD":
		return "$", true
	case "GBP":
		return "£", true
	case "JPY":
		return "¥", true
	case "TRY":
		return "₺", true
	default:
		return "", false
	}
}

func minorDigits(code string) int {
	switch code {
	case "JPY", "KRW":
		return 0
	default:
		return 2
	}
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
