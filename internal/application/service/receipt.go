package service

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/printer"
)

const (
	receiptDateLayout = "2 January 2006"
	receiptTimeLayout = "03:04 pm"
	receiptFooter     = "Thank You for Your Visit!"
	receiptFooterSub  = "Visit Again Soon"
)

//go:embed templates/receipt.html
var receiptHTML string

var receiptTemplate = template.Must(template.New("receipt.html").Funcs(template.FuncMap{
	"plain": func(m entity.Money) string { return m.Plain() },
	"fixed": func(m entity.Money) string { return m.String() },
}).Parse(receiptHTML))

// RenderReceipt composes the printable receipt of a bill. The payment block
// shows cash only when an amount was received, and UPI by method alone.
func RenderReceipt(bill entity.Bill, header entity.ReceiptHeader, packingRate entity.Money, loc *time.Location) *entity.Receipt {
	if loc == nil {
		loc = time.Local
	}
	when := bill.Date.In(loc)

	r := &entity.Receipt{
		Header:        header,
		BillNumber:    bill.BillNumber,
		Date:          when.Format(receiptDateLayout),
		Time:          when.Format(receiptTimeLayout),
		Customer:      bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		Items:         make([]entity.ReceiptItem, 0, len(bill.Items)),
		ItemCount:     bill.ItemCount(),
		PackingRate:   packingRate,
		SubTotal:      bill.Subtotal,
		PackingCharge: bill.PackingCharge,
		Total:         bill.Total,
	}

	for _, item := range bill.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}

	switch {
	case bill.PaymentMethod == enum.PaymentMethodCash && bill.AmountReceived > 0:
		r.PaymentMethod = "Cash"
		r.AmountReceived = bill.AmountReceived
		r.Change = bill.Change
	case bill.PaymentMethod == enum.PaymentMethodUPI:
		r.PaymentMethod = "UPI"
	}

	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
// Thermal code pages lack the rupee sign, so amounts print as "Rs.".
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Tagline != "" {
		doc.Text(r.Header.Tagline)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Phone: %s", r.Header.Phone)
	}
	if r.Header.Email != "" {
		doc.Text(r.Header.Email)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill No:", r.BillNumber).
		KeyValue("Date:", r.Date).
		KeyValue("Time:", r.Time)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.CustomerPhone != "" {
		doc.KeyValue("Phone:", r.CustomerPhone)
	}

	doc.Separator('-').
		SetBold(true).
		ItemRow("Item", "Qty", "Price", "Amount").
		SetBold(false)
	for _, item := range r.Items {
		doc.ItemRow(item.Name, fmt.Sprint(item.Quantity), item.UnitPrice.Plain(), item.Total.Plain())
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal:", "Rs."+r.SubTotal.Plain())
	if r.ShowPacking() {
		doc.KeyValue(fmt.Sprintf("Packing (%d x Rs.%s):", r.ItemCount, r.PackingRate.Plain()), "Rs."+r.PackingCharge.Plain())
	}
	doc.SetBold(true).
		KeyValue("Total Amount:", "Rs."+r.Total.Plain()).
		SetBold(false)

	switch r.PaymentMethod {
	case "Cash":
		doc.KeyValue("Payment Method:", "Cash").
			KeyValue("Amount Received:", "Rs."+r.AmountReceived.Plain())
		if r.ShowChange() {
			doc.KeyValue("Change:", "Rs."+r.Change.String())
		}
	case "UPI":
		doc.KeyValue("Payment Method:", "UPI")
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		SetBold(true).
		Text(receiptFooter).
		SetBold(false).
		Text(receiptFooterSub).
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatReceiptText lays a receipt out as plain text for terminals
func FormatReceiptText(r *entity.Receipt, width int) string {
	if width <= 0 {
		width = 40
	}
	var b strings.Builder
	center := func(s string) {
		n := (width - utf8.RuneCountInString(s)) / 2
		if n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	kv := func(k, v string) {
		n := width - utf8.RuneCountInString(k) - utf8.RuneCountInString(v)
		if n < 1 {
			n = 1
		}
		b.WriteString(k + strings.Repeat(" ", n) + v + "\n")
	}
	rule := func() { b.WriteString(strings.Repeat("-", width) + "\n") }

	center(r.Header.StoreName)
	for _, line := range []string{r.Header.Tagline, r.Header.Address} {
		if line != "" {
			center(line)
		}
	}
	if contact := contactLine(r.Header); contact != "" {
		center(contact)
	}
	rule()
	kv("Date:", r.Date)
	kv("Time:", r.Time)
	kv("Bill No:", r.BillNumber)
	if r.Customer != "" {
		kv("Customer:", r.Customer)
	}
	if r.CustomerPhone != "" {
		kv("Phone:", r.CustomerPhone)
	}
	rule()
	for _, item := range r.Items {
		kv(fmt.Sprintf("%s x%d @ ₹%s", item.Name, item.Quantity, item.UnitPrice.Plain()), "₹"+item.Total.Plain())
	}
	rule()
	kv("Subtotal:", "₹"+r.SubTotal.Plain())
	if r.ShowPacking() {
		kv(fmt.Sprintf("Packing Charge (%d items × ₹%s):", r.ItemCount, r.PackingRate.Plain()), "₹"+r.PackingCharge.Plain())
	}
	kv("Total Amount:", "₹"+r.Total.Plain())
	switch r.PaymentMethod {
	case "Cash":
		kv("Payment Method:", "Cash")
		kv("Amount Received:", "₹"+r.AmountReceived.Plain())
		if r.ShowChange() {
			kv("Change:", "₹"+r.Change.String())
		}
	case "UPI":
		kv("Payment Method:", "UPI")
	}
	rule()
	center(receiptFooter)
	center(receiptFooterSub)

	return b.String()
}

// FormatReceiptHTML renders the receipt page handed to the browser print dialog
func FormatReceiptHTML(r *entity.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

func contactLine(h entity.ReceiptHeader) string {
	var parts []string
	if h.Phone != "" {
		parts = append(parts, "Phone: "+h.Phone)
	}
	if h.Email != "" {
		parts = append(parts, "Email: "+h.Email)
	}
	return strings.Join(parts, " | ")
}
