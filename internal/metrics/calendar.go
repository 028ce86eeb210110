package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var shortMonthsES = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate interpreta as datas gravadas no documento (ISO 8601 ou só a data)
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthKey retorna YYYY-MM da data no fuso informado
func MonthKey(value string, loc *time.Location) (string, bool) {
	t, ok := ParseDate(value)
	if !ok {
		return "", false
	}
	return t.In(loc).Format("2006-01"), true
}

// MonthLabel retorna o rótulo curto em espanhol, ex. "ene 25"
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", shortMonthsES[t.Month()-1], t.Year()%100)
}

// trailingMonths retorna o primeiro dia dos n meses terminados no mês de now, em ordem crescente
func trailingMonths(now time.Time, n int) []time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, first.AddDate(0, -i, 0))
	}
	return out
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func times(price float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
}

func f64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
