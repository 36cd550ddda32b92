// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/order"
)

// receiptWidthMM matches an 80mm thermal roll
const receiptWidthMM = 80

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

// Service renders order receipts
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// Enabled reports whether PDF output is configured
func (s *Service) Enabled() bool {
	return s.config.Receipt.PDFEnabled
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	InvoiceNumber string
	Date          string
	Customer      string
	PaymentMethod string
	Lines         []ReceiptLine
	Total         string
	Store         StoreInfo
}

// ReceiptLine is one printed line
type ReceiptLine struct {
	Description string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// StoreInfo represents the store printed in the receipt header
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// BuildReceipt prepares the template data for an order
func (s *Service) BuildReceipt(o *order.Order) ReceiptData {
	currency := s.config.Receipt.Currency

	issued := s.now()
	if o.CreatedAt != nil {
		issued = *o.CreatedAt
	}

	invoice := o.InvoiceNumber
	if invoice == "" {
		invoice = o.ID.String()
	}

	data := ReceiptData{
		InvoiceNumber: invoice,
		Date:          issued.Format("02 Jan 2006 15:04"),
		Customer:      o.CustomerName(),
		PaymentMethod: strings.ToUpper(string(o.PaymentMethod)),
		Store: StoreInfo{
			Name:    s.config.Receipt.StoreName,
			Address: s.config.Receipt.StoreAddress,
			Phone:   s.config.Receipt.StorePhone,
		},
	}

	computed := decimal.Zero
	for _, item := range o.Items {
		description := item.Variant.Label()
		if description == "" {
			description = "Variant " + item.ProductVariantID.String()
		}
		data.Lines = append(data.Lines, ReceiptLine{
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   FormatMoney(currency, item.Price),
			Subtotal:    FormatMoney(currency, item.Subtotal()),
		})
		computed = computed.Add(item.Subtotal())
	}

	total := o.TotalAmount
	if total.IsZero() {
		total = computed
	}
	data.Total = FormatMoney(currency, total)

	return data
}

// RenderHTML renders the receipt as HTML
func (s *Service) RenderHTML(o *order.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, s.BuildReceipt(o)); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateReceipt renders the receipt and converts it to PDF with wkhtmltopdf
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	dpi := s.config.Receipt.DPI
	if dpi <= 0 {
		dpi = 203
	}
	pdfg.Dpi.Set(uint(dpi))
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageWidth.Set(receiptWidthMM)
	pdfg.MarginLeft.Set(2)
	pdfg.MarginRight.Set(2)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// FormatMoney renders an amount as e.g. ₦1,234.50
func FormatMoney(currency string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	return sign + currency + grouped.String() + "." + frac
}

// Receipt HTML template
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.InvoiceNumber}}</title>
    <style>
        body { font-family: "Courier New", monospace; font-size: 11px; margin: 0; padding: 4px; }
        .center { text-align: center; }
        .store { font-size: 14px; font-weight: bold; }
        table { width: 100%; border-collapse: collapse; }
        td { padding: 2px 0; vertical-align: top; }
        .right { text-align: right; }
        .total td { border-top: 1px dashed #000; font-weight: bold; padding-top: 4px; }
        hr { border: none; border-top: 1px dashed #000; }
    </style>
</head>
<body>
    <div class="center">
        <div class="store">{{.Store.Name}}</div>
        {{if .Store.Address}}<div>{{.Store.Address}}</div>{{end}}
        {{if .Store.Phone}}<div>Tel: {{.Store.Phone}}</div>{{end}}
    </div>
    <hr>
    <div>Invoice: {{.InvoiceNumber}}</div>
    <div>Date: {{.Date}}</div>
    <div>Customer: {{.Customer}}</div>
    {{if .PaymentMethod}}<div>Payment: {{.PaymentMethod}}</div>{{end}}
    <hr>
    <table>
        {{range .Lines}}
        <tr><td colspan="3">{{.Description}}</td></tr>
        <tr>
            <td>{{.Quantity}} x {{.UnitPrice}}</td>
            <td></td>
            <td class="right">{{.Subtotal}}</td>
        </tr>
        {{end}}
        <tr class="total">
            <td>TOTAL</td>
            <td></td>
            <td class="right">{{.Total}}</td>
        </tr>
    </table>
    <hr>
    <div class="center">Thank you for your patronage!</div>
</body>
</html>
`
