package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brixmarket/brix/pkg/types"
)

// formatPrice renders a nullable price in won, or "-" when absent.
func formatPrice(n types.NullableNumber) string {
	if n.IsNil() {
		return "-"
	}
	return groupDigits(n.Value) + " won"
}

// formatCount renders a nullable count, or "-" when absent.
func formatCount(n types.NullableNumber) string {
	if n.IsNil() {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// formatRating renders a nullable rating to one decimal place.
func formatRating(n types.NullableNumber) string {
	if n.IsNil() {
		return "-"
	}
	return fmt.Sprintf("%.1f", n.Value)
}

// groupDigits inserts thousands separators into the integer part.
func groupDigits(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
