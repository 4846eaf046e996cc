package view

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		cents    int64
		currency string
		want     string
	}{
		{1000, "EUR", "€10.00"},
		{5, "eur", "€0.05"},
		{0, "USD", "$0.00"},
		{123456789, "USD", "$1,234,567.89"},
		{100000, "TRY", "₺1,000.00"},
		{1500, "JPY", "¥1,500"},
		{1999, "CHF", "19.99 CHF"},
		{250, "", "2.50"},
		{-250, "GBP", "-£2.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.cents, tc.currency); got != tc.want {
			t.Fatalf("FormatMoney(%d, %q) = %q, want %q", tc.cents, tc.currency, got, tc.want)
		}
	}
}

func TestMoneyFromCentsMatchesFormatMoney(t *testing.T) {
	if MoneyFromCents(4200, "EUR") != FormatMoney(4200, "EUR") {
		t.Fatalf("expected MoneyFromCents to delegate to FormatMoney")
	}
}
