package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// CSVWriter writes the cleaned table and its sample extract.
type CSVWriter struct {
	logger logging.Logger
}

// NewCSVWriter builds a CSV exporter.
func NewCSVWriter(logger logging.Logger) *CSVWriter {
	return &CSVWriter{logger: logger}
}

// WriteTable writes every surviving record to path in Header order.
func (w *CSVWriter) WriteTable(path string, tbl *domain.Table) error {
	return w.write(path, tbl.Products)
}

// WriteSample writes the first n records to path. A sample larger than the
// table writes the whole table.
func (w *CSVWriter) WriteSample(path string, tbl *domain.Table, n int) error {
	if n > len(tbl.Products) {
		n = len(tbl.Products)
	}
	return w.write(path, tbl.Products[:n])
}

func (w *CSVWriter) write(path string, products []*domain.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(Record(p)); err != nil {
			return fmt.Errorf("write row %d: %w", p.RowIndex, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	w.logger.Info("csv written",
		logging.String("file", path),
		logging.Int("rows", len(products)))
	return nil
}
