package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/sangkips/comanda-pos/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrinterService(term *terminal, p printer.Printer) *PrinterService {
	return NewPrinterService(p, term.ledger, PrinterOptions{
		Header:   entity.ReceiptHeader{StoreName: "Lanchonete"},
		Type:     printer.TypeFile,
		Width:    printer.Width58mm,
		Location: time.UTC,
	})
}

func TestPrinterService_PrintsAfterFinalize(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	rec := &recordingPrinter{}
	term.ledger.Subscribe(newPrinterService(term, rec))

	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 2)
	_, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	require.Len(t, rec.jobs, 1)
	job := rec.jobs[0]
	assert.True(t, bytes.Contains(job, []byte("COMANDA #1001")))
	assert.True(t, bytes.Contains(job, []byte("2x Coxinha")))
	assert.True(t, bytes.Contains(job, []byte("10.00")))
	assert.True(t, bytes.Contains(job, []byte("2026-10-18 12:30")))
}

func TestPrinterService_PrintFailureKeepsSale(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	term.ledger.Subscribe(newPrinterService(term, &recordingPrinter{err: errors.New("paper out")}))

	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 1)
	sale, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)
	assert.Len(t, term.ledger.AllSales(ctx), 1)
	assert.Equal(t, int64(1001), sale.OrderNumber)
}

func TestPrinterService_Reprint(t *testing.T) {
	ctx := context.Background()
	term := newTerminal()
	rec := &recordingPrinter{}
	svc := newPrinterService(term, rec)

	p := term.mustCreate("Coxinha", "5.00")
	_, _ = term.cart.AddLine(ctx, p.ID, 3)
	_, err := term.ledger.Finalize(ctx)
	require.NoError(t, err)

	receipt, err := svc.PrintSaleReceipt(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Lanchonete", receipt.Header.StoreName)
	require.Len(t, receipt.Items, 1)
	assert.EqualValues(t, 500, receipt.Items[0].UnitPrice)
	assert.EqualValues(t, 1500, receipt.Total)
	assert.Len(t, rec.jobs, 1)

	_, err = svc.PrintSaleReceipt(ctx, 999)
	assert.Error(t, err)
}

func TestPrinterService_StatusAndTestPrint(t *testing.T) {
	term := newTerminal()
	rec := &recordingPrinter{}
	svc := newPrinterService(term, rec)

	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, printer.Width58mm, status.Width)

	receipt, err := svc.TestPrint()
	require.NoError(t, err)
	assert.EqualValues(t, 2000, receipt.Total)
	assert.Len(t, rec.jobs, 1)

	none := NewPrinterService(printer.NewNullPrinter(), term.ledger, PrinterOptions{Type: printer.TypeNone})
	assert.False(t, none.GetStatus().Configured)
}

func TestFormatReceipt_EndsWithCut(t *testing.T) {
	r := &entity.Receipt{
		Header:      entity.ReceiptHeader{StoreName: "Loja", Address: "Rua A, 1"},
		OrderNumber: 7,
		Items:       []entity.ReceiptItem{{Name: "Suco", Quantity: 2, UnitPrice: 450, Total: 900}},
		Total:       900,
	}

	out := FormatReceipt(r, printer.Width80mm)
	assert.True(t, bytes.HasSuffix(out, []byte{printer.GS, 'V', 0x01}))
	assert.True(t, bytes.Contains(out, []byte("@ 4.50 each")))
	assert.True(t, bytes.Contains(out, []byte("Rua A, 1")))
}
