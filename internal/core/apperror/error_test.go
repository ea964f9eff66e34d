package apperror

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrapAndUnwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := NewIO("open", "stock.txt", cause)

	wrapped := fmt.Errorf("read inventory: %w", err)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeIO, appErr.Code)
	assert.Equal(t, "stock.txt", appErr.Details["path"])
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "caused by")
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain", err: errors.New("boom"), want: ExitInternal},
		{name: "parse", err: NewParse(3, "price", "bad price"), want: ExitData},
		{name: "input", err: NewInvalidInput("no input"), want: ExitUsage},
		{name: "wrapped io", err: fmt.Errorf("x: %w", NewIO("write", "out", nil)), want: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestCodeHelpers(t *testing.T) {
	assert.True(t, IsInvalidState(NewInvalidState("cursor exhausted")))
	assert.True(t, IsParse(NewParse(1, "sold", "not a number")))
	assert.True(t, IsValidation(NewValidation("bad").WithDetail("field", "price")))
	assert.True(t, IsNotFound(NewNotFound("file", "x")))
	assert.False(t, IsParse(errors.New("plain")))
}
