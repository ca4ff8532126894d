package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/pkg/printer"
)

// SaleFinder looks up sales for reprinting
type SaleFinder interface {
	GetByOrderNumber(ctx context.Context, orderNumber int64) (*entity.Sale, error)
}

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	sales       SaleFinder
	header      entity.ReceiptHeader
	printerType string
	width       int
	loc         *time.Location
}

// PrinterOptions configures a PrinterService.
type PrinterOptions struct {
	Header   entity.ReceiptHeader
	Type     string
	Width    int
	Location *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, sales SaleFinder, opts PrinterOptions) *PrinterService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &PrinterService{
		printer:     p,
		sales:       sales,
		header:      opts.Header,
		printerType: opts.Type,
		width:       opts.Width,
		loc:         opts.Location,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// SaleFinalized prints the receipt of a freshly committed sale. A printer
// failure is logged only; the sale stands.
func (s *PrinterService) SaleFinalized(ctx context.Context, sale entity.Sale) {
	receipt := s.BuildReceipt(&sale)
	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		log.Error().Err(err).Int64("order_number", sale.OrderNumber).Msg("Printer error")
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:      s.header,
		OrderNumber: 0,
		Date:        time.Now().In(s.loc).Format("2006-01-02 15:04"),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 1000, Total: 1000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		Total: 2000,
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintSaleReceipt fetches a sale by order number and prints its receipt again.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, orderNumber int64) (*entity.Receipt, error) {
	sale, err := s.sales.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	receipt := s.BuildReceipt(sale)
	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		log.Error().Err(err).Int64("order_number", orderNumber).Msg("Printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// BuildReceipt composes the printable view of a sale.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:      s.header,
		OrderNumber: sale.OrderNumber,
		Date:        sale.Timestamp.In(s.loc).Format("2006-01-02 15:04"),
		Items:       make([]entity.ReceiptItem, 0, len(sale.Lines)),
		Total:       sale.Total,
	}
	for _, l := range sale.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Total:     l.Subtotal(),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper of width characters.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.Separator('=')

	// Order
	doc.SetBold(true).
		SetFontSize(printer.FontDouble).
		TextF("COMANDA #%d", r.OrderNumber).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text(r.Date).
		SetAlign(printer.AlignLeft).
		Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.String())
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.String()).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Obrigado pela preferencia!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
