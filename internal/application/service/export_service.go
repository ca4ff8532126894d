package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sangkips/comanda-pos/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// Export entity names used in file names
const (
	ExportProducts = "products"
	ExportSales    = "sales"
)

const (
	productsSheet = "Products"
	salesSheet    = "Sales"
)

var (
	productHeader = []any{"Code", "Name", "Price"}
	saleHeader    = []any{"Order Number", "Timestamp", "Total", "Items"}
)

// ErrNoSheet is returned when an uploaded workbook has no worksheet
var ErrNoSheet = errors.New("workbook has no sheets")

// ExportService writes catalog and ledger spreadsheets and reads product
// import sheets.
type ExportService struct {
	loc *time.Location
	now func() time.Time
}

// NewExportService creates a new export service. Timestamps and file dates
// are rendered in loc.
func NewExportService(loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{loc: loc, now: time.Now}
}

// FileName builds "<entity>_<date|all>_<export date>.xlsx"
func (s *ExportService) FileName(entityName string, date *time.Time) string {
	scope := "all"
	if date != nil {
		scope = date.In(s.loc).Format(time.DateOnly)
	}
	return fmt.Sprintf("%s_%s_%s.xlsx", entityName, scope, s.now().In(s.loc).Format(time.DateOnly))
}

// ExportProducts writes one row per product: code, name, price
func (s *ExportService) ExportProducts(w io.Writer, products []entity.Product) error {
	return s.writeSheet(w, productsSheet, productHeader, len(products), func(i int) []any {
		p := products[i]
		return []any{p.Code, p.Name, p.Price.Float64()}
	}, "C")
}

// ExportSales writes one row per sale: order number, timestamp, total and the
// flattened "name ×qty (price)" items
func (s *ExportService) ExportSales(w io.Writer, sales []entity.Sale) error {
	return s.writeSheet(w, salesSheet, saleHeader, len(sales), func(i int) []any {
		sale := sales[i]
		return []any{
			sale.OrderNumber,
			sale.Timestamp.In(s.loc).Format(time.DateTime),
			sale.Total.Float64(),
			sale.ItemsSummary(),
		}
	}, "C")
}

func (s *ExportService) writeSheet(w io.Writer, sheet string, header []any, n int, row func(i int) []any, moneyCol string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if n > 0 {
		// builtin format 2 is "0.00"
		twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return fmt.Errorf("create money style: %w", err)
		}
		if err := f.SetCellStyle(sheet, moneyCol+"2", fmt.Sprintf("%s%d", moneyCol, n+1), twoPlaces); err != nil {
			return fmt.Errorf("style money column: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ParseProductSheet reads the first worksheet of an xlsx file. The first row
// is a header; columns are matched by name (code, name, price) and fall back
// to A, B, C. Blank rows are skipped.
func (s *ExportService) ParseProductSheet(r io.Reader) ([]ImportProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return []ImportProductRow{}, nil
	}

	codeCol, nameCol, priceCol := headerColumns(rows[0])

	out := make([]ImportProductRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		row := ImportProductRow{
			Row:   i + 2,
			Code:  cellAt(cells, codeCol),
			Name:  cellAt(cells, nameCol),
			Price: cellAt(cells, priceCol),
		}
		if row.Code == "" && row.Name == "" && row.Price == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func headerColumns(header []string) (code, name, price int) {
	code, name, price = 0, 1, 2
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code", "codigo", "código":
			code = i
		case "name", "nome", "product":
			name = i
		case "price", "preco", "preço":
			price = i
		}
	}
	return code, name, price
}

func cellAt(cells []string, idx int) string {
	if idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}
