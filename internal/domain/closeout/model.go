package closeout

import "math"

// Payment одна строка разбивки по способу оплаты в документе кассы.
type Payment struct {
	Method string  `json:"method" doc:"Payment method label as reported by the POS"`
	Amount float64 `json:"amount"`
}

// Amounts сводные суммы смены. Любое поле может отсутствовать.
type Amounts struct {
	Gross     *float64 `json:"gross,omitempty"`
	Net       *float64 `json:"net,omitempty"`
	VAT       *float64 `json:"vat,omitempty"`
	Surcharge *float64 `json:"surcharge,omitempty"`
}

// DocumentKind тип исходного документа POS.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "invoice"
	KindTicket       DocumentKind = "ticket"
	KindDeliveryNote DocumentKind = "delivery_note"
	KindSalesOrder   DocumentKind = "sales_order"
)

type Document struct {
	Kind   DocumentKind `json:"kind,omitempty"`
	Number string       `json:"number,omitempty"`
	Total  *float64     `json:"total,omitempty"`
}

// Key составной ключ записи закрытия кассы.
type Key struct {
	PartitionKey string `json:"PK"`
	SortKey      string `json:"SK"`
}

// Record одно закрытие кассовой смены (cierre) для заведения, терминала и дня.
// Записи неизменяемы на стороне клиента: после каждой мутации они перечитываются.
type Record struct {
	PartitionKey   string   `json:"PK" doc:"Venue / workplace code"`
	SortKey        string   `json:"SK" doc:"Usually BusinessDay#sequence"`
	BusinessDay    string   `json:"businessDay,omitempty" doc:"YYYY-MM-DD"`
	PosID          string   `json:"posId,omitempty"`
	PosName        string   `json:"posName,omitempty"`
	SequenceNumber int64    `json:"sequenceNumber,omitempty"`
	Amounts        *Amounts `json:"amounts,omitempty"`

	// AuthoritativeGross прямо сообщённая сумма продаж; имеет приоритет над суммами по платежам.
	AuthoritativeGross *float64 `json:"grossSales,omitempty"`

	// Исторические плоские колонки по способам оплаты.
	CashTotal     *float64 `json:"cashTotal,omitempty"`
	CardTotal     *float64 `json:"cardTotal,omitempty"`
	TransferTotal *float64 `json:"transferTotal,omitempty"`
	BizumTotal    *float64 `json:"bizumTotal,omitempty"`
	PendingTotal  *float64 `json:"pendingTotal,omitempty"`

	InvoicePayments      []Payment `json:"invoicePayments,omitempty"`
	TicketPayments       []Payment `json:"ticketPayments,omitempty"`
	DeliveryNotePayments []Payment `json:"deliveryNotePayments,omitempty"`
	SalesOrderPayments   []Payment `json:"salesOrderPayments,omitempty"`

	Documents []Document `json:"documents,omitempty"`
}

func (r Record) Key() Key {
	return Key{PartitionKey: r.PartitionKey, SortKey: r.SortKey}
}

// PaymentArrays возвращает все четыре массива платежей в фиксированном порядке.
func (r Record) PaymentArrays() [][]Payment {
	return [][]Payment{
		r.InvoicePayments,
		r.TicketPayments,
		r.DeliveryNotePayments,
		r.SalesOrderPayments,
	}
}

// directTotal returns the flattened column for a known canonical method, if any.
func (r Record) directTotal(method string) *float64 {
	switch method {
	case MethodCash:
		return r.CashTotal
	case MethodCard:
		return r.CardTotal
	case MethodTransfer:
		return r.TransferTotal
	case MethodBizum:
		return r.BizumTotal
	case MethodPending:
		return r.PendingTotal
	}
	return nil
}

func (r Record) gross() (float64, bool) {
	if r.Amounts == nil {
		return 0, false
	}
	return finite(r.Amounts.Gross)
}

func finite(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}
