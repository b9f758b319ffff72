// Package utils formats the numbers shown in the stats panel.
package utils

import (
	"fmt"
	"strings"
)

const (
	// Loading is shown while the first refresh is in flight.
	Loading = "..."
	// Unknown is shown when a value has never been fetched.
	Unknown = "–"
)

// Separators describes how a locale writes numbers.
type Separators struct {
	Thousands string
	Decimal   string
}

var (
	English = Separators{Thousands: ",", Decimal: "."}
	German  = Separators{Thousands: ".", Decimal: ","}
	Polish  = Separators{Thousands: " ", Decimal: ","}
)

func TruncateString(str string, num int) string {
	r := []rune(str)
	if len(r) <= num {
		return str
	}
	if num <= 3 {
		return string(r[:num])
	}
	return string(r[0:num-3]) + "..."
}

// GroupDigits inserts sep between thousands of a plain "1234.5" number and
// rewrites the decimal point to dec.
func GroupDigits(s string, sep, dec string) string {
	if len(s) == 0 {
		return s
	}
	parts := strings.SplitN(s, ".", 2)
	integerPart := parts[0]
	sign := ""
	if strings.HasPrefix(integerPart, "-") {
		sign = "-"
		integerPart = integerPart[1:]
	}

	var result strings.Builder
	result.WriteString(sign)
	n := len(integerPart)
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(integerPart[:remainder])
	}
	for i := remainder; i < n; i += 3 {
		if i > 0 {
			result.WriteString(sep)
		}
		result.WriteString(integerPart[i : i+3])
	}

	if len(parts) > 1 {
		result.WriteString(dec)
		result.WriteString(parts[1])
	}
	return result.String()
}

func AddCommas(s string) string {
	return GroupDigits(s, ",", ".")
}

func FormatFloat(f float64, decimals int, seps Separators) string {
	return GroupDigits(fmt.Sprintf("%.*f", decimals, f), seps.Thousands, seps.Decimal)
}

// FormatEUR renders a price, or a placeholder while loading or when absent.
func FormatEUR(price *float64, decimals int, loading bool, seps Separators) string {
	if price == nil {
		if loading {
			return Loading
		}
		return Unknown
	}
	return "€" + FormatFloat(*price, decimals, seps)
}

// FormatCount renders an optional count the same way as FormatEUR.
func FormatCount(n *int, loading bool, seps Separators) string {
	if n == nil {
		if loading {
			return Loading
		}
		return Unknown
	}
	return GroupDigits(fmt.Sprintf("%d", *n), seps.Thousands, seps.Decimal)
}

// FormatCompact writes large values as 100K or 1.2M.
func FormatCompact(v *float64, loading bool) string {
	if v == nil {
		if loading {
			return Loading
		}
		return Unknown
	}
	f := *v
	switch {
	case f >= 1e9:
		return trimZero(fmt.Sprintf("%.1f", f/1e9)) + "B"
	case f >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", f/1e6)) + "M"
	case f >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", f/1e3)) + "K"
	}
	return trimZero(fmt.Sprintf("%.2f", f))
}

func trimZero(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
