package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatVND formats an amount the way the vi-VN locale prints plain numbers:
// "." groups thousands, "," separates at most three fraction digits and
// trailing fraction zeros are dropped (1234567.5 -> "1.234.567,5").
func FormatVND(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}

	rounded := math.Round(amount*1000) / 1000
	if rounded == 0 {
		return "0"
	}

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	raw := fmt.Sprintf("%.3f", rounded)
	parts := strings.SplitN(raw, ".", 2)
	intPart := groupThousands(parts[0], ".")
	decPart := strings.TrimRight(parts[1], "0")

	result := intPart
	if decPart != "" {
		result += "," + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatArea renders a square-meter figure with exactly two decimals, as the
// quotation text shows it.
func FormatArea(area float64) string {
	return fmt.Sprintf("%.2f", area)
}

// FormatQty prints whole quantities without decimals and fractional ones with
// up to three.
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", qty), "0"), ".")
}

// groupThousands inserts sep between every group of three digits from the right.
func groupThousands(s, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
