package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"perishables/internal/core/apperror"
	"perishables/internal/core/types"
	"perishables/internal/domain/stock"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	defaultSheet  = "Sheet1"
	invalidSheetC = `[]:*?/\`

	// at least two places, more when the value has them
	moneyFormat = "0.00############"
)

var columnTitles = []any{
	"Store name", "Product name", "Day of delivery", "Sold amount",
	"Remaining amount", "Expiration date", "Price for one", "Stock value",
}

// XLSXWriter puts every table on its own sheet and every free text line on
// a trailing Summary sheet. The workbook is written on Close.
type XLSXWriter struct {
	path       string
	file       *excelize.File
	sheets     map[string]bool
	summaryRow int
	moneyStyle int
}

// NewXLSXWriter prepares a workbook that will be saved to path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{
		path:   path,
		file:   excelize.NewFile(),
		sheets: make(map[string]bool),
	}
}

// WriteTable implements reports.Writer.
func (x *XLSXWriter) WriteTable(title string, list *stock.List) error {
	name := x.sheetName(title)
	if _, err := x.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	x.sheets[name] = true

	if err := x.file.SetSheetRow(name, "A1", &columnTitles); err != nil {
		return fmt.Errorf("write header on %q: %w", name, err)
	}

	style, err := x.moneyStyleID()
	if err != nil {
		return err
	}

	row := 2
	c := list.Cursor()
	for c.Reset(); c.Valid(); c.Advance() {
		r := c.Value()
		cells := []any{
			r.Store(),
			r.Product(),
			r.Delivered().Format(DateLayout),
			r.Sold(),
			r.Remaining(),
			r.Expires().Format(DateLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := x.file.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("write row %d on %q: %w", row, name, err)
		}
		if err := x.setMoney(name, 7, row, r.UnitPrice(), style); err != nil {
			return err
		}
		if err := x.setMoney(name, 8, row, r.StockValue(), style); err != nil {
			return err
		}
		row++
	}
	return nil
}

// setMoney stores the decimal text as the numeric cell value, so the
// workbook keeps every digit instead of a float64 approximation.
func (x *XLSXWriter) setMoney(sheet string, col, row int, m types.Money, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := x.file.SetCellDefault(sheet, cell, m.String()); err != nil {
		return fmt.Errorf("write %s on %q: %w", cell, sheet, err)
	}
	return x.file.SetCellStyle(sheet, cell, cell, style)
}

func (x *XLSXWriter) moneyStyleID() (int, error) {
	if x.moneyStyle != 0 {
		return x.moneyStyle, nil
	}
	numFmt := moneyFormat
	style, err := x.file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return 0, fmt.Errorf("create money style: %w", err)
	}
	x.moneyStyle = style
	return style, nil
}

// WriteLine implements reports.Writer.
func (x *XLSXWriter) WriteLine(format string, args ...any) error {
	if x.summaryRow == 0 {
		if _, err := x.file.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("create summary sheet: %w", err)
		}
		x.sheets[summarySheet] = true
	}
	x.summaryRow++

	cell, err := excelize.CoordinatesToCellName(1, x.summaryRow)
	if err != nil {
		return err
	}
	return x.file.SetCellValue(summarySheet, cell, fmt.Sprintf(format, args...))
}

// Close saves the workbook and releases it.
func (x *XLSXWriter) Close() error {
	defer x.file.Close()

	if len(x.sheets) > 0 && !x.sheets[defaultSheet] {
		if err := x.file.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return apperror.NewIO("save", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetC, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Table"
	}
	name = truncateRunes(name, maxSheetName)

	base := name
	for i := 2; x.sheets[name] || name == summarySheet; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
