package closeout

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxSequence первое значение float64, не представимое в int64.
const maxSequence = 1 << 63

// Допустимые написания полей во входящем JSON. Ключи сравниваются без учёта регистра.
var (
	pkFields       = []string{"PK", "partitionKey", "workplace", "venueCode", "local"}
	skFields       = []string{"SK", "sortKey"}
	dayFields      = []string{"businessDay", "business_day", "BusinessDay", "fechaNegocio", "fecha"}
	posIDFields    = []string{"posId", "pos_id", "saleCenterId", "centroVenta"}
	posNameFields  = []string{"posName", "pos_name", "saleCenterName", "nombreCentroVenta"}
	seqFields      = []string{"sequenceNumber", "sequence", "numero", "number"}
	amountsFields  = []string{"amounts", "importes", "totals"}
	grossFields    = []string{"gross", "bruto", "total"}
	netFields      = []string{"net", "neto", "base"}
	vatFields      = []string{"vat", "iva", "tax"}
	surchargeField = []string{"surcharge", "recargo"}
	authGross      = []string{"grossSales", "ventasBrutas", "totalVentas", "salesTotal"}
	cashFields     = []string{"cashTotal", "efectivo", "totalEfectivo"}
	cardFields     = []string{"cardTotal", "tarjeta", "totalTarjeta"}
	transferFields = []string{"transferTotal", "transferencia", "totalTransferencia"}
	bizumFields    = []string{"bizumTotal", "bizum", "totalBizum"}
	pendingFields  = []string{"pendingTotal", "pendienteCobro", "totalPendiente"}
	invoicePay     = []string{"invoicePayments", "pagosFacturas", "facturasPagos"}
	ticketPay      = []string{"ticketPayments", "pagosTickets", "ticketsPagos"}
	deliveryPay    = []string{"deliveryNotePayments", "pagosAlbaranes", "albaranesPagos"}
	orderPay       = []string{"salesOrderPayments", "pagosPedidos", "pedidosPagos"}
	documentFields = []string{"documents", "documentos"}
	methodFields   = []string{"method", "methodName", "name", "paymentMethod", "formaPago", "metodo"}
	payAmount      = []string{"amount", "importe", "total", "value"}
	docKindFields  = []string{"kind", "type", "tipo"}
	docNumFields   = []string{"number", "numero", "id"}
	venueCodeField = []string{"code", "codigo", "PK", "id"}
	nameFields     = []string{"name", "nombre", "displayName"}
	saleIDFields   = []string{"id", "code", "codigo", "SK"}
	saleVenueField = []string{"venueCode", "local", "PK"}
)

// fields индексирует нетипизированный объект по ключам в нижнем регистре.
type fields struct {
	raw   map[string]any
	lower map[string]any
}

func newFields(raw map[string]any) fields {
	f := fields{raw: raw, lower: make(map[string]any, len(raw))}
	for k, v := range raw {
		lk := strings.ToLower(k)
		// the all-lowercase spelling wins over keys differing only in case
		if _, exists := f.lower[lk]; exists && k != lk {
			continue
		}
		f.lower[lk] = v
	}
	return f
}

func (f fields) get(names []string) (any, bool) {
	for _, n := range names {
		if v, ok := f.raw[n]; ok && v != nil {
			return v, true
		}
	}
	for _, n := range names {
		if v, ok := f.lower[strings.ToLower(n)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f fields) str(names []string) string {
	v, ok := f.get(names)
	if !ok {
		return ""
	}
	return toString(v)
}

func (f fields) amount(names []string) *float64 {
	v, ok := f.get(names)
	if !ok {
		return nil
	}
	n, ok := toAmount(v)
	if !ok {
		return nil
	}
	return &n
}

func (f fields) object(names []string) (fields, bool) {
	v, ok := f.get(names)
	if !ok {
		return fields{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fields{}, false
	}
	return newFields(m), true
}

func (f fields) objects(names []string) []fields {
	v, ok := f.get(names)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]fields, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, newFields(m))
		}
	}
	return out
}

// DecodeRecord строит типизированную запись из нетипизированного JSON-объекта.
// Поля ищутся один раз по списку допустимых написаний; некорректные суммы
// не приводят к ошибке.
func DecodeRecord(raw map[string]any) Record {
	f := newFields(raw)

	rec := Record{
		PartitionKey:       f.str(pkFields),
		SortKey:            f.str(skFields),
		PosID:              f.str(posIDFields),
		PosName:            f.str(posNameFields),
		AuthoritativeGross: f.amount(authGross),
		CashTotal:          f.amount(cashFields),
		CardTotal:          f.amount(cardFields),
		TransferTotal:      f.amount(transferFields),
		BizumTotal:         f.amount(bizumFields),
		PendingTotal:       f.amount(pendingFields),
	}

	rec.BusinessDay = NormalizeBusinessDay(f.str(dayFields), rec.SortKey)

	if seq, ok := toAmount(mustGet(f, seqFields)); ok && math.Abs(seq) < maxSequence {
		rec.SequenceNumber = int64(seq)
	}

	if amounts, ok := f.object(amountsFields); ok {
		a := &Amounts{
			Gross:     amounts.amount(grossFields),
			Net:       amounts.amount(netFields),
			VAT:       amounts.amount(vatFields),
			Surcharge: amounts.amount(surchargeField),
		}
		if a.Gross != nil || a.Net != nil || a.VAT != nil || a.Surcharge != nil {
			rec.Amounts = a
		}
	}

	rec.InvoicePayments = decodePayments(f.objects(invoicePay))
	rec.TicketPayments = decodePayments(f.objects(ticketPay))
	rec.DeliveryNotePayments = decodePayments(f.objects(deliveryPay))
	rec.SalesOrderPayments = decodePayments(f.objects(orderPay))

	for _, d := range f.objects(documentFields) {
		rec.Documents = append(rec.Documents, Document{
			Kind:   DocumentKind(d.str(docKindFields)),
			Number: d.str(docNumFields),
			Total:  d.amount(payAmount),
		})
	}

	return rec
}

func DecodeRecords(raws []map[string]any) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, DecodeRecord(raw))
	}
	return records
}

func DecodeVenues(raws []map[string]any) []Venue {
	venues := make([]Venue, 0, len(raws))
	for _, raw := range raws {
		f := newFields(raw)
		v := Venue{Code: f.str(venueCodeField), Name: f.str(nameFields)}
		if v.Code != "" {
			venues = append(venues, v)
		}
	}
	return venues
}

func DecodeSaleCenters(raws []map[string]any) []SaleCenter {
	centers := make([]SaleCenter, 0, len(raws))
	for _, raw := range raws {
		f := newFields(raw)
		sc := SaleCenter{
			ID:        f.str(saleIDFields),
			Name:      f.str(nameFields),
			VenueCode: f.str(saleVenueField),
		}
		if sc.ID != "" {
			centers = append(centers, sc)
		}
	}
	return centers
}

// NormalizeBusinessDay приводит день к YYYY-MM-DD. Если день не задан или
// не распознан, он берётся из префикса sortKey до '#'.
func NormalizeBusinessDay(day, sortKey string) string {
	if day != "" {
		if t, err := ParseDate(day); err == nil {
			return t.Format(WireLayout)
		}
	}

	prefix, _, _ := strings.Cut(sortKey, "#")
	if t, err := ParseDate(prefix); err == nil {
		return t.Format(WireLayout)
	}
	return ""
}

func decodePayments(items []fields) []Payment {
	if len(items) == 0 {
		return nil
	}
	payments := make([]Payment, 0, len(items))
	for _, it := range items {
		p := Payment{Method: it.str(methodFields)}
		if v := it.amount(payAmount); v != nil {
			p.Amount = *v
		}
		payments = append(payments, p)
	}
	return payments
}

func mustGet(f fields, names []string) any {
	v, _ := f.get(names)
	return v
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		return ParseAmount(t.String())
	case string:
		return ParseAmount(t)
	}
	return 0, false
}
