// Package textfile reads the semicolon separated inventory file.
//
// One record per line, seven fields:
//
//	store; product; delivered; sold; remaining; expires; unit price
//
// Blank and whitespace-only lines are skipped. Dates are ISO (2020-03-01),
// slash ISO (2020/03/01) or US (03/01/2020).
package textfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"perishables/internal/core/apperror"
	"perishables/internal/core/types"
	"perishables/internal/domain/stock"
	"perishables/pkg/logger"
)

const fieldCount = 7

var fieldNames = [fieldCount]string{"store", "product", "delivered", "sold", "remaining", "expires", "unitPrice"}

var dateLayouts = []string{time.DateOnly, "2006/01/02", "01/02/2006", "2006.01.02"}

// ReadFile opens path and reads it with Read.
func ReadFile(ctx context.Context, path string) (*stock.List, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.NewNotFound("input file", path).WithCause(err)
		}
		return nil, apperror.NewIO("open", path, err)
	}
	defer f.Close()

	list, err := Read(ctx, f)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			return nil, appErr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Info(ctx, "inventory loaded", "path", path, "records", list.Len())
	return list, nil
}

// Read parses every line of r into a record list, in file order.
func Read(ctx context.Context, r io.Reader) (*stock.List, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	list := stock.NewList()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			return list, nil
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, apperror.NewParse(line, "", "malformed line").WithCause(err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue // whitespace-only line
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(line, row)
		if err != nil {
			return nil, err
		}
		list.Append(rec)
	}
}

func parseRow(line int, row []string) (*stock.Record, error) {
	if len(row) != fieldCount {
		return nil, apperror.NewParse(line, "", "expected 7 fields separated by \"; \"").
			WithDetail("got", len(row))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	delivered, err := parseDate(row[2])
	if err != nil {
		return nil, fieldError(line, 2, row[2], err)
	}
	sold, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fieldError(line, 3, row[3], err)
	}
	remaining, err := strconv.Atoi(row[4])
	if err != nil {
		return nil, fieldError(line, 4, row[4], err)
	}
	expires, err := parseDate(row[5])
	if err != nil {
		return nil, fieldError(line, 5, row[5], err)
	}
	price, err := types.NewMoneyFromString(row[6])
	if err != nil {
		return nil, fieldError(line, 6, row[6], err)
	}

	rec, err := stock.NewRecord(row[0], row[1], delivered, sold, remaining, expires, price)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			return nil, appErr.WithDetail("line", line)
		}
		return nil, err
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func fieldError(line, idx int, value string, cause error) *apperror.AppError {
	return apperror.NewParse(line, fieldNames[idx], "invalid "+fieldNames[idx]).
		WithDetail("value", value).
		WithCause(cause)
}
