package closeout

import (
	"slices"
	"strings"
)

const (
	MethodCash     = "Efectivo"
	MethodCard     = "Tarjeta"
	MethodTransfer = "Transferencia"
	MethodBizum    = "Bizum"
	MethodPending  = "Pendiente de cobro"
	MethodCheque   = "Cheque"
	MethodVoucher  = "Vale"
	MethodInvite   = "Invitación"

	// Unnamed метка для пустых названий способа оплаты.
	Unnamed = "Sin nombre"
)

// knownOrder фиксированный порядок отображения известных способов оплаты.
var knownOrder = []string{
	MethodCash,
	MethodCard,
	MethodTransfer,
	MethodBizum,
	MethodPending,
	MethodCheque,
	MethodVoucher,
	MethodInvite,
}

var defaultAliases = map[string]string{
	"efectivo":           MethodCash,
	"cash":               MethodCash,
	"metalico":           MethodCash,
	"metálico":           MethodCash,
	"contado":            MethodCash,
	"tarjeta":            MethodCard,
	"card":               MethodCard,
	"tarjeta credito":    MethodCard,
	"tarjeta crédito":    MethodCard,
	"tarjeta de credito": MethodCard,
	"tarjeta de crédito": MethodCard,
	"datafono":           MethodCard,
	"datáfono":           MethodCard,
	"tpv":                MethodCard,
	"visa":               MethodCard,
	"transferencia":      MethodTransfer,
	"transfer":           MethodTransfer,
	"bank transfer":      MethodTransfer,
	"bizum":              MethodBizum,
	"pending":            MethodPending,
	"pendiente":          MethodPending,
	"pendiente de cobro": MethodPending,
	"pendiente cobro":    MethodPending,
	"credito":            MethodPending,
	"crédito":            MethodPending,
	"cheque":             MethodCheque,
	"check":              MethodCheque,
	"vale":               MethodVoucher,
	"voucher":            MethodVoucher,
	"invitacion":         MethodInvite,
	"invitación":         MethodInvite,
}

// Catalog приводит сырые названия способов оплаты к каноническому виду.
// Каноническая форма зависит только от входной строки, поэтому Catalog
// можно использовать из нескольких горутин после создания.
type Catalog struct {
	aliases map[string]string
	known   map[string]string
}

// NewCatalog создаёт каталог с таблицей синонимов по умолчанию, дополненной extra
// (сырое название -> каноническое).
func NewCatalog(extra map[string]string) *Catalog {
	c := &Catalog{
		aliases: make(map[string]string, len(defaultAliases)+2*len(extra)),
		known:   make(map[string]string, len(knownOrder)),
	}

	for k, v := range defaultAliases {
		c.aliases[k] = v
	}
	for _, m := range knownOrder {
		c.known[lookupKey(m)] = m
	}

	raws := make([]string, 0, len(extra))
	for raw := range extra {
		raws = append(raws, raw)
	}
	slices.Sort(raws)

	targets := make([]string, 0, len(raws))
	for _, raw := range raws {
		canonical := strings.TrimSpace(extra[raw])
		if lookupKey(raw) == "" || canonical == "" {
			continue
		}
		c.aliases[lookupKey(raw)] = canonical
		targets = append(targets, canonical)
	}
	// every target must resolve to itself, otherwise canonicalization is not idempotent
	for _, canonical := range targets {
		c.aliases[lookupKey(canonical)] = canonical
	}
	// a default target may have been redirected by an extra alias
	for k, v := range c.aliases {
		if t, ok := c.aliases[lookupKey(v)]; ok {
			c.aliases[k] = t
		}
	}

	return c
}

// Canonicalize возвращает каноническое название для сырой метки.
func (c *Catalog) Canonicalize(raw string) string {
	key := lookupKey(raw)
	if key == "" {
		return Unnamed
	}
	if m, ok := c.aliases[key]; ok {
		return m
	}
	if m, ok := c.known[key]; ok {
		return m
	}
	return strings.TrimSpace(raw)
}

// IsKnown сообщает, входит ли каноническое название в фиксированный список.
func (c *Catalog) IsKnown(method string) bool {
	return slices.Contains(knownOrder, method)
}

// DiscoverMethods собирает способы оплаты из всех массивов платежей всех записей.
// Сначала идут известные способы в фиксированном порядке, затем остальные
// в лексическом порядке. Результат не зависит от порядка записей.
func (c *Catalog) DiscoverMethods(records []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, payments := range rec.PaymentArrays() {
			for _, p := range payments {
				seen[c.Canonicalize(p.Method)] = struct{}{}
			}
		}
	}

	methods := make([]string, 0, len(seen))
	for _, m := range knownOrder {
		if _, ok := seen[m]; ok {
			methods = append(methods, m)
			delete(seen, m)
		}
	}
	delete(seen, Unnamed)

	others := make([]string, 0, len(seen))
	for m := range seen {
		others = append(others, m)
	}
	slices.Sort(others)

	return append(methods, others...)
}

// DiscoverColumns дополняет DiscoverMethods известными способами, у которых
// хотя бы одна запись несёт историческую плоскую колонку.
func (c *Catalog) DiscoverColumns(records []Record) []string {
	discovered := c.DiscoverMethods(records)

	seen := make(map[string]struct{}, len(discovered))
	for _, m := range discovered {
		seen[m] = struct{}{}
	}
	added := false
	for _, rec := range records {
		for _, m := range knownOrder {
			if _, ok := seen[m]; ok {
				continue
			}
			if _, ok := finite(rec.directTotal(m)); ok {
				seen[m] = struct{}{}
				added = true
			}
		}
	}
	if !added {
		return discovered
	}

	columns := make([]string, 0, len(seen))
	for _, m := range knownOrder {
		if _, ok := seen[m]; ok {
			columns = append(columns, m)
		}
	}
	for _, m := range discovered {
		if !c.IsKnown(m) {
			columns = append(columns, m)
		}
	}
	return columns
}

// lookupKey нормализует метку для поиска: регистр и пробелы не учитываются.
func lookupKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
