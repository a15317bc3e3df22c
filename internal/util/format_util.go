package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatUSDT renders an amount for activity details and notifications,
// e.g. "1,250.50 USDT".
func FormatUSDT(amount float64) string {
	return amountPrinter.Sprintf("%.2f USDT", amount)
}
