// Package report writes record lists as fixed-width text tables and as
// spreadsheet workbooks.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"perishables/internal/core/apperror"
	"perishables/internal/core/types"
	"perishables/internal/domain/reports"
	"perishables/internal/domain/stock"
)

// DateLayout is the date format used in every report cell.
const DateLayout = "01/02/2006"

const ruleWidth = 130

var rule = strings.Repeat("-", ruleWidth)

const (
	headerFormat = "| %-15s | %-15s | %-15s | %-15s | %-16s | %-15s | %-15s |\n"
	rowFormat    = "| %-15s | %-15s | %15s | %15d | %16d | %15s | %15s |\n"
)

var (
	_ reports.Writer = (*TableWriter)(nil)
	_ reports.Writer = (*XLSXWriter)(nil)
)

// TableWriter renders tables as fixed-width text.
type TableWriter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewTableWriter writes to w. Call Flush (or Close) when done.
func NewTableWriter(w io.Writer) *TableWriter {
	tw := &TableWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}
	return tw
}

// CreateTableFile truncates or creates path and returns a writer for it.
func CreateTableFile(path string) (*TableWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, apperror.NewIO("create", path, err)
	}
	return NewTableWriter(f), nil
}

// WriteTable implements reports.Writer.
func (t *TableWriter) WriteTable(title string, list *stock.List) error {
	fmt.Fprintln(t.w, rule)
	fmt.Fprintln(t.w, title)
	fmt.Fprintln(t.w, rule)
	fmt.Fprintf(t.w, headerFormat,
		"Store name", "Product name", "Day of delivery", "Sold amount",
		"Remaining amount", "Expiration date", "Price for one")
	fmt.Fprintln(t.w, rule)

	c := list.Cursor()
	for c.Reset(); c.Valid(); c.Advance() {
		r := c.Value()
		fmt.Fprintf(t.w, rowFormat,
			r.Store(), r.Product(), r.Delivered().Format(DateLayout), r.Sold(),
			r.Remaining(), r.Expires().Format(DateLayout), types.Format(r.UnitPrice()))
	}

	fmt.Fprintln(t.w, rule)
	_, err := fmt.Fprintln(t.w)
	return err
}

// WriteLine implements reports.Writer.
func (t *TableWriter) WriteLine(format string, args ...any) error {
	_, err := fmt.Fprintf(t.w, format+"\n", args...)
	return err
}

// Flush writes buffered output.
func (t *TableWriter) Flush() error {
	return t.w.Flush()
}

// Close flushes and closes the underlying writer if it is closable.
func (t *TableWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}
