package closeout

import (
	"math"
	"strconv"
	"strings"
)

// NoValue выводится вместо нулевой или нераспознанной суммы.
const NoValue = "—"

// maxCentsAmount граница, до которой сумма в центах помещается в int64.
const maxCentsAmount = 9e16

// ParseAmount разбирает сумму в формате с десятичной запятой ("1.234,56")
// или с десятичной точкой ("1234.56"). ok=false для пустого или
// нечислового ввода.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "€")
	cleaned = strings.TrimSuffix(cleaned, "€")
	cleaned = strings.TrimSuffix(cleaned, "EUR")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, false
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0:
		// the right-most separator is the decimal one
		if comma > dot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case dot >= 0 && strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatAmount округляет до двух знаков и форматирует с запятой в качестве
// десятичного разделителя и точкой для тысяч. Ноль выводится как NoValue.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoValue
	}

	abs := math.Abs(v)
	var whole, frac string
	if abs < maxCentsAmount {
		cents := int64(math.Round(abs * 100))
		if cents == 0 {
			return NoValue
		}
		whole = strconv.FormatInt(cents/100, 10)
		frac = strconv.FormatInt(cents%100+100, 10)[1:]
	} else {
		whole, frac, _ = strings.Cut(strconv.FormatFloat(abs, 'f', 2, 64), ".")
	}

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)

	return b.String()
}

// Aggregator считает суммы по способам оплаты и итоги записи.
type Aggregator struct {
	catalog *Catalog
}

func NewAggregator(catalog *Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// TotalForMethod возвращает сумму записи по каноническому способу оплаты.
// Если у записи заполнена историческая плоская колонка для этого способа,
// используется она, иначе суммируются все массивы платежей.
func (a *Aggregator) TotalForMethod(rec Record, method string) float64 {
	if v, ok := finite(rec.directTotal(method)); ok {
		return v
	}

	var total float64
	for _, payments := range rec.PaymentArrays() {
		for _, p := range payments {
			if a.catalog.Canonicalize(p.Method) == method {
				total += safeAmount(p.Amount)
			}
		}
	}
	return total
}

// MethodTotals считает TotalForMethod для каждого способа из methods.
func (a *Aggregator) MethodTotals(rec Record, methods []string) []float64 {
	totals := make([]float64, len(methods))
	for i, m := range methods {
		totals[i] = a.TotalForMethod(rec, m)
	}
	return totals
}

// InvoiceTotal возвращает продажи по счетам. Прямо сообщённая сумма продаж
// всегда имеет приоритет над суммой массива платежей по счетам.
func (a *Aggregator) InvoiceTotal(rec Record) float64 {
	if v, ok := finite(rec.AuthoritativeGross); ok {
		return v
	}

	var total float64
	for _, p := range rec.InvoicePayments {
		total += safeAmount(p.Amount)
	}
	return total
}

func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
