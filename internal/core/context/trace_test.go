package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/core/id"
)

func TestTraceContext_RoundTrip(t *testing.T) {
	tc := NewTraceContext("Duomenys.txt")
	ctx := WithTrace(context.Background(), tc)

	got := GetTrace(ctx)
	require.NotNil(t, got)
	assert.Equal(t, tc.RunID, GetRunID(ctx))
	assert.Equal(t, tc.TraceID, GetTraceID(ctx))
	assert.Equal(t, "Duomenys.txt", got.Input)
	assert.False(t, id.IsNil(got.RunID))
}

func TestTraceContext_Missing(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, GetTrace(ctx))
	assert.True(t, id.IsNil(GetRunID(ctx)))
	assert.NotEmpty(t, GetTraceID(ctx))
}
