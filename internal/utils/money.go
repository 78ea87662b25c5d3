package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders a whole-rand amount with two decimals, as the payment form expects.
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%d.00", amount)
}

// FormatZAR renders an amount as "R 1 234 567": space-grouped thousands, no decimals.
func FormatZAR(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	return fmt.Sprintf("R %s%s", sign, groupThousands(digits))
}

// ParseZAR parses "R 45 000", "45,000" or "45000" into a whole-rand amount.
func ParseZAR(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToUpper(s), "R")
	replacer := strings.NewReplacer(" ", "", "\u00a0", "", ",", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rand amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// groupThousands inserts a space every three digits from the right.
func groupThousands(str string) string {
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(c)
	}
	return out.String()
}
