package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"perishables/internal/core/types"
	"perishables/internal/domain/stock"
)

func sampleList(t *testing.T) *stock.List {
	t.Helper()
	l := stock.NewList()
	for _, row := range []struct {
		store, product string
		remaining      int
		price          string
	}{
		{"Maxima", "Milk", 200, "0.89"},
		{"Iki", "Bread", 40, "1.2"},
		{"Rimi", "Kefir", 3, "0.333"},
	} {
		r, err := stock.NewRecord(row.store, row.product,
			time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), 10, row.remaining,
			time.Date(2020, 3, 11, 0, 0, 0, 0, time.UTC), types.MustMoney(row.price))
		require.NoError(t, err)
		l.Append(r)
	}
	return l
}

func TestTableWriter_WriteTable(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTableWriter(&buf)

	require.NoError(t, tw.WriteTable("First list", sampleList(t)))
	require.NoError(t, tw.WriteLine("The sum is: %s", "186.00"))
	require.NoError(t, tw.Flush())

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 11)

	assert.Equal(t, strings.Repeat("-", 130), lines[0])
	assert.Equal(t, "First list", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "| Store name      | Product name    |"))
	assert.Equal(t,
		"| Maxima          | Milk            |      03/01/2020 |              10 |              200 |      03/11/2020 |            0.89 |",
		lines[5])
	assert.Contains(t, lines[6], "| Iki             | Bread           |")
	assert.True(t, strings.HasSuffix(lines[6], "|            1.20 |"))
	// sub-cent prices are printed in full
	assert.True(t, strings.HasSuffix(lines[7], "|           0.333 |"), lines[7])
	assert.Equal(t, strings.Repeat("-", 130), lines[8])
	assert.Equal(t, "", lines[9])
	assert.Equal(t, "The sum is: 186.00", lines[10])
}

func TestTableWriter_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTableWriter(&buf)

	require.NoError(t, tw.WriteTable("Nothing", stock.NewList()))
	require.NoError(t, tw.Close())

	// rule, title, rule, header, rule, rule, blank
	assert.Equal(t, 7, strings.Count(buf.String(), "\n"))
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	xw := NewXLSXWriter(path)

	require.NoError(t, xw.WriteTable("First list", sampleList(t)))
	require.NoError(t, xw.WriteTable("First list", stock.NewList()))
	require.NoError(t, xw.WriteLine("The sum: %d", 7))
	require.NoError(t, xw.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"First list", "First list (2)", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("First list", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Store name", rows[0][0])
	assert.Equal(t, "Maxima", rows[1][0])
	assert.Equal(t, "03/01/2020", rows[1][2])
	assert.Equal(t, "200", rows[1][4])
	assert.Equal(t, "0.89", rows[1][6])
	assert.Equal(t, "178", rows[1][7])
	assert.Equal(t, "0.333", rows[3][6])
	assert.Equal(t, "0.999", rows[3][7])

	typ, err := f.GetCellType("First list", "H4")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)

	summary, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "The sum: 7", summary)
}

func TestSheetName(t *testing.T) {
	xw := NewXLSXWriter("unused.xlsx")
	defer xw.file.Close()

	assert.Equal(t, "a_b_c", xw.sheetName("a/b:c"))
	assert.Equal(t, "Table", xw.sheetName("  "))
	assert.Equal(t, "Summary (2)", xw.sheetName("Summary"))

	long := strings.Repeat("ž", 40)
	assert.Equal(t, 31, len([]rune(xw.sheetName(long))))
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	ta, tb := NewTableWriter(&a), NewTableWriter(&b)

	w := Multi(ta, tb)
	require.NoError(t, w.WriteLine("hello %s", "world"))
	require.NoError(t, ta.Flush())
	require.NoError(t, tb.Flush())

	assert.Equal(t, "hello world\n", a.String())
	assert.Equal(t, a.String(), b.String())
}
