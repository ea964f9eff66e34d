package textfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/core/apperror"
	"perishables/internal/domain/stock"
)

const sample = `Maxima; Milk; 2020-03-01; 10; 200; 2020-03-11; 0.89
Iki; Bread; 2020/03/02; 5; 40; 2020/03/04; 1.20

Maxima; Cheese; 03/01/2020; 0; 50; 03/31/2020; 3,50
`

func records(l *stock.List) []*stock.Record {
	var out []*stock.Record
	for r := range l.All() {
		out = append(out, r)
	}
	return out
}

func TestRead(t *testing.T) {
	list, err := Read(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 3, list.Len())

	got := records(list)
	assert.Equal(t, "Maxima", got[0].Store())
	assert.Equal(t, "Milk", got[0].Product())
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), got[0].Delivered())
	assert.Equal(t, 10, got[0].Sold())
	assert.Equal(t, 200, got[0].Remaining())
	assert.Equal(t, 10, got[0].PeriodDays())
	assert.Equal(t, "0.89", got[0].UnitPrice().String())

	assert.Equal(t, "Iki", got[1].Store())
	assert.Equal(t, 2, got[1].PeriodDays())

	assert.Equal(t, "Cheese", got[2].Product())
	assert.Equal(t, "3.5", got[2].UnitPrice().String())
	assert.Equal(t, 30, got[2].PeriodDays())
}

func TestRead_Empty(t *testing.T) {
	list, err := Read(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())
}

func TestRead_SkipsWhitespaceLines(t *testing.T) {
	in := "Maxima; Milk; 2020-03-01; 10; 200; 2020-03-11; 0.89\n   \n\t\nIki; Bread; 2020-03-02; 5; 40; 2020-03-04; 1.20\n  "
	list, err := Read(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	got := records(list)
	require.Len(t, got, 2)
	assert.Equal(t, "Maxima", got[0].Store())
	assert.Equal(t, "Iki", got[1].Store())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		field string
		code  string
	}{
		{name: "too few fields", input: "A; Milk; 2020-03-01\n", line: 1, field: "", code: apperror.CodeParse},
		{name: "bad date", input: "A; Milk; 2020-13-01; 1; 1; 2020-03-02; 1\n", line: 1, field: "delivered", code: apperror.CodeParse},
		{name: "bad sold", input: "A; Milk; 2020-03-01; x; 1; 2020-03-02; 1\n", line: 1, field: "sold", code: apperror.CodeParse},
		{name: "bad price", input: "A; Milk; 2020-03-01; 1; 1; 2020-03-02; $1\n", line: 1, field: "unitPrice", code: apperror.CodeParse},
		{name: "second line", input: "A; Milk; 2020-03-01; 1; 1; 2020-03-02; 1\nB; Egg; 2020-03-01; 1; oops; 2020-03-02; 1\n", line: 2, field: "remaining", code: apperror.CodeParse},
		{name: "invalid record", input: "A; Milk; 2020-03-05; 1; 1; 2020-03-02; 1\n", line: 1, field: "expires", code: apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.line, appErr.Details["line"])
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader(sample))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Duomenys.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	list, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())

	_, err = ReadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.True(t, apperror.IsNotFound(err))
}
