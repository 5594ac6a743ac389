package analyst

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	eok = 1e8  // 억
	jo  = 1e12 // 조
)

// FormatValue renders a numeric value for prose. Korean output uses the
// native scale words 억 and 조 above their thresholds; every other language
// gets thousands separators.
func FormatValue(value float64, language string) string {
	if strings.HasPrefix(strings.ToLower(language), "ko") {
		return formatKorean(value)
	}
	return groupThousands(value)
}

func formatKorean(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= jo:
		return trimScale(value/jo) + "조"
	case abs >= eok:
		return trimScale(value/eok) + "억"
	default:
		return groupThousands(value)
	}
}

// trimScale formats with one decimal and drops a trailing ".0".
func trimScale(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func groupThousands(value float64) string {
	neg := value < 0
	abs := math.Abs(value)

	intPart := math.Trunc(abs)
	frac := abs - intPart

	digits := strconv.FormatFloat(intPart, 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()

	if frac > 1e-9 {
		fracStr := strconv.FormatFloat(frac, 'f', 1, 64)
		out += strings.TrimPrefix(fracStr, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// formatPercent renders a rate with one decimal place, dropping ".0".
func formatPercent(v float64) string {
	return trimScale(v)
}

// formatRatio renders a benchmark multiple such as "1.5×".
func formatRatio(v float64) string {
	return fmt.Sprintf("%s×", trimScale(v))
}
