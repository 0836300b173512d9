package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

const sheetName = "Products"

// ExcelWriter mirrors the CSV export into a spreadsheet for analysts.
type ExcelWriter struct {
	logger logging.Logger
}

// NewExcelWriter builds an xlsx exporter.
func NewExcelWriter(logger logging.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

// WriteTable writes the cleaned table to an xlsx workbook with a single
// Products sheet. Columns match the CSV export exactly.
func (w *ExcelWriter) WriteTable(path string, tbl *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := w.writeRow(f, 1, Header()); err != nil {
		return err
	}
	for i, p := range tbl.Products {
		if err := w.writeRow(f, i+2, Record(p)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	w.logger.Info("xlsx written",
		logging.String("file", path),
		logging.Int("rows", tbl.Len()))
	return nil
}

func (w *ExcelWriter) writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
