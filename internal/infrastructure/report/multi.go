package report

import (
	"errors"

	"perishables/internal/domain/reports"
	"perishables/internal/domain/stock"
)

type multiWriter []reports.Writer

// Multi fans every call out to all writers, in order. All writers are
// called even if one fails; the errors are joined.
func Multi(writers ...reports.Writer) reports.Writer {
	return multiWriter(writers)
}

func (m multiWriter) WriteTable(title string, list *stock.List) error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.WriteTable(title, list))
	}
	return errors.Join(errs...)
}

func (m multiWriter) WriteLine(format string, args ...any) error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.WriteLine(format, args...))
	}
	return errors.Join(errs...)
}
