package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.ReceiptRenderer = (*Renderer)(nil)

const (
	pageMargin  = 19.05 // 0.75in
	rowHeight   = 7.0
	labelWidth  = 55.0
	imageWidth  = 101.6 // 4in
	imageHeight = 76.2  // 3in
	fontFamily  = "Helvetica"
	footerText  = "Thank you for your purchase! This receipt serves as proof of payment."
)

// Renderer lays out Letter-sized payment receipts.
type Renderer struct {
	company  string
	images   ImageSource
	logger   *slog.Logger
	now      func() time.Time
	compress bool
}

type Option func(*Renderer)

func WithImageSource(src ImageSource) Option {
	return func(r *Renderer) {
		r.images = src
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func NewRenderer(company string, opts ...Option) *Renderer {
	company = strings.TrimSpace(company)
	if company == "" {
		company = "Cedric House Planning"
	}
	r := &Renderer{company: company, now: time.Now, compress: true}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Render(ctx context.Context, doc ports.ReceiptDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Receipt "+doc.Number, true)
	pdf.SetCreator(r.company, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	pdf.SetFont(fontFamily, "B", 24)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(contentWidth, 12, tr(r.company), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(contentWidth, 9, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	r.infoRows(pdf, tr, receiptRows(doc, r.now()))
	pdf.Ln(5)

	r.heading(pdf, contentWidth, "HOUSE PLAN DETAILS")
	r.planImage(ctx, pdf, doc, contentWidth)
	r.infoRows(pdf, tr, planRows(doc.Plan))
	pdf.Ln(5)

	r.heading(pdf, contentWidth, "PAYMENT SUMMARY")
	r.summary(pdf, tr, contentWidth, doc)
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "I", 9)
	pdf.SetTextColor(136, 136, 136)
	pdf.MultiCell(contentWidth, 5, footerText, "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}

type row struct {
	label string
	value string
}

func receiptRows(doc ports.ReceiptDocument, now time.Time) []row {
	issued := doc.Order.CreatedAt
	if issued.IsZero() {
		issued = now
	}
	rows := []row{
		{"Receipt Number:", doc.Number},
		{"Order ID:", "#" + strconv.FormatInt(doc.Order.ID, 10)},
		{"Date:", formatDate(issued)},
	}
	if email := strings.TrimSpace(doc.Order.CustomerEmail); email != "" {
		rows = append(rows, row{"Customer Email:", email})
	}
	return append(rows, row{"Payment Status:", statusLabel(doc.Order.Status)})
}

func planRows(plan domain.Plan) []row {
	rows := []row{
		{"Plan Name:", plan.Title},
		{"Category:", categoryLabel(plan)},
		{"Bedrooms:", strconv.Itoa(plan.Bedrooms)},
		{"Bathrooms:", strconv.Itoa(plan.Bathrooms)},
		{"Garage:", strconv.Itoa(plan.Garage)},
		{"Floor Area:", fmt.Sprintf("%d m²", plan.FloorArea)},
		{"Levels:", strconv.Itoa(plan.Levels)},
		{"Dimensions:", fmt.Sprintf("%sm × %sm", plan.Width.StringFixed(2), plan.Depth.StringFixed(2))},
	}
	if styles := plan.HeadlineStyles(3); len(styles) > 0 {
		rows = append(rows, row{"Style:", strings.Join(styles, ", ")})
	}
	return rows
}

func (r *Renderer) heading(pdf *fpdf.Fpdf, width float64, title string) {
	pdf.SetFont(fontFamily, "B", 13)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(width, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func (r *Renderer) infoRows(pdf *fpdf.Fpdf, tr func(string) string, rows []row) {
	for _, rw := range rows {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetTextColor(85, 85, 85)
		pdf.CellFormat(labelWidth, rowHeight, tr(rw.label), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(26, 26, 26)
		pdf.CellFormat(0, rowHeight, tr(rw.value), "", 1, "L", false, 0, "")
	}
}

// planImage embeds the lead plan image. Any failure is logged and the receipt continues without it.
func (r *Renderer) planImage(ctx context.Context, pdf *fpdf.Fpdf, doc ports.ReceiptDocument, width float64) {
	ref, ok := doc.Plan.LeadImage()
	if !ok || r.images == nil {
		return
	}
	data, err := r.images.Load(ctx, ref)
	if err != nil {
		r.warn(ctx, "receipt image unavailable", err, doc)
		return
	}
	kind, err := imageType(data)
	if err != nil {
		r.warn(ctx, "receipt image unsupported", err, doc)
		return
	}
	name := "plan-" + strconv.FormatInt(doc.Plan.ID, 10)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		r.warn(ctx, "receipt image could not be decoded", err, doc)
		return
	}
	x := pageMargin + (width-imageWidth)/2
	pdf.ImageOptions(name, x, pdf.GetY(), imageWidth, imageHeight, true, fpdf.ImageOptions{ImageType: kind}, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) summary(pdf *fpdf.Fpdf, tr func(string) string, width float64, doc ports.ReceiptDocument) {
	amountWidth := 50.0
	itemWidth := width - amountWidth
	amount := formatRand(doc.Order.Amount)

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(51, 51, 51)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(itemWidth, 8, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, 8, "Amount", "", 1, "R", true, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(itemWidth, 8, tr(doc.Plan.Title), "B", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, 8, amount, "B", 1, "R", false, 0, "")
	pdf.Ln(4)

	top := pdf.GetY()
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetFillColor(232, 245, 233)
	pdf.CellFormat(itemWidth, 10, "TOTAL PAID", "", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, 10, amount, "", 1, "R", true, 0, "")
	pdf.SetDrawColor(46, 125, 50)
	pdf.SetLineWidth(0.6)
	pdf.Line(pageMargin, top, pageMargin+width, top)
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
}

func (r *Renderer) warn(ctx context.Context, msg string, err error, doc ports.ReceiptDocument) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg,
		slog.Int64("order.id", doc.Order.ID),
		slog.Int64("plan.id", doc.Plan.ID),
		slog.String("error", err.Error()))
}
