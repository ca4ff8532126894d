package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportService() *ExportService {
	svc := NewExportService(time.UTC)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func readSheet(t *testing.T, data []byte) (string, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return sheet, rows
}

func TestExportService_FileName(t *testing.T) {
	svc := newExportService()
	day := time.Date(2026, 10, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "sales_2026-10-01_2026-10-18.xlsx", svc.FileName(ExportSales, &day))
	assert.Equal(t, "products_all_2026-10-18.xlsx", svc.FileName(ExportProducts, nil))
}

func TestExportService_ExportProducts(t *testing.T) {
	var buf bytes.Buffer
	err := newExportService().ExportProducts(&buf, []entity.Product{
		{ID: uuid.New(), Code: "001", Name: "Coxinha", Price: 500},
		{ID: uuid.New(), Code: "002", Name: "Suco", Price: 450},
	})
	require.NoError(t, err)

	sheet, rows := readSheet(t, buf.Bytes())
	assert.Equal(t, "Products", sheet)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Name", "Price"}, rows[0])
	assert.Equal(t, []string{"001", "Coxinha", "5.00"}, rows[1])
	assert.Equal(t, "4.50", rows[2][2])
}

func TestExportService_ExportSales(t *testing.T) {
	sale := entity.NewSale(uuid.New(), 1001, fixedNow, []entity.CartLine{
		{ProductID: uuid.New(), Name: "Coxinha", Price: 500, Quantity: 2},
		{ProductID: uuid.New(), Name: "Suco", Price: 450, Quantity: 1},
	})

	var buf bytes.Buffer
	require.NoError(t, newExportService().ExportSales(&buf, []entity.Sale{sale}))

	sheet, rows := readSheet(t, buf.Bytes())
	assert.Equal(t, "Sales", sheet)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Order Number", "Timestamp", "Total", "Items"}, rows[0])
	assert.Equal(t, []string{"1001", "2026-10-18 12:30:00", "14.50", "Coxinha ×2 (5.00), Suco ×1 (4.50)"}, rows[1])
}

func TestExportService_ExportEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newExportService().ExportSales(&buf, nil))

	_, rows := readSheet(t, buf.Bytes())
	assert.Len(t, rows, 1)
}

func TestExportService_ParseProductSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Nome", "Preço", "Código"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Coxinha", "5,00", "001"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Suco", 4.5, ""}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := newExportService().ParseProductSheet(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ImportProductRow{Row: 2, Code: "001", Name: "Coxinha", Price: "5,00"}, rows[0])
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, "Suco", rows[1].Name)
	assert.Equal(t, "4.5", rows[1].Price)
}

func TestExportService_ParseRejectsNonWorkbook(t *testing.T) {
	_, err := newExportService().ParseProductSheet(bytes.NewReader([]byte("code,name,price")))
	assert.Error(t, err)
}

func TestExportService_RoundTripThroughImport(t *testing.T) {
	svc := newExportService()
	var buf bytes.Buffer
	require.NoError(t, svc.ExportProducts(&buf, []entity.Product{{Code: "001", Name: "Coxinha", Price: 500}}))

	rows, err := svc.ParseProductSheet(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "5.00", rows[0].Price)
}
