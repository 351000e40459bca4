package trace

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpan_DisabledIsNoop(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), "fetcher.FetchBoth", "MRVL")
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	RecordError(span, errors.New("ignored"))
	span.End()
}

func TestStartSpan_EnabledExportsOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf, Version: "test"}))
	assert.True(t, Enabled())

	_, span := StartSpan(context.Background(), "stocksage.GetPriceData", "MRVL")
	assert.True(t, span.SpanContext().IsValid())
	RecordError(span, errors.New("request failed with status code 500"))
	span.End()

	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, Enabled())

	out := buf.String()
	assert.Contains(t, out, "stocksage.GetPriceData")
	assert.Contains(t, out, "MRVL")
	assert.Contains(t, out, "request failed with status code 500")
}
