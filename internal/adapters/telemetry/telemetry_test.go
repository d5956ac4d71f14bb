package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/burrow/internal/adapters/telemetry"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/burrow/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func TestOTelTracer_Attributes(t *testing.T) {
	sr := withRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "resolve",
		ports.WithAttribute("spec", "ripgrep >=14"),
	)
	span.SetAttribute("candidates", 12)
	span.SetAttribute("bytes", uint64(2048))
	span.SetAttribute("cached", true)
	span.SetAttribute("platform", domain.PlatformLinux64)
	span.SetAttribute("names", []string{"a", "b"})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "resolve", ended[0].Name())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "ripgrep >=14", attrs["spec"].AsString())
	assert.Equal(t, int64(12), attrs["candidates"].AsInt64())
	assert.Equal(t, int64(2048), attrs["bytes"].AsInt64())
	assert.True(t, attrs["cached"].AsBool())
	assert.Equal(t, "linux-64", attrs["platform"].AsString())
	assert.Equal(t, []string{"a", "b"}, attrs["names"].AsStringSlice())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := withRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "fetch")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "x")
	assert.Equal(t, ctx, got)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestBridge_ReportsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	log.EXPECT().Info(gomock.Cond(func(s string) bool {
		return strings.HasPrefix(s, "install took ")
	}))
	_, span := tracer.Start(context.Background(), "install")
	span.End()

	log.EXPECT().Warn(gomock.Cond(func(s string) bool {
		return strings.HasPrefix(s, "fetch failed after ")
	}))
	_, failed := tracer.Start(context.Background(), "fetch")
	failed.SetStatus(codes.Error, "offline")
	failed.End()
}

func TestInstall_SetsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown := telemetry.Install(telemetry.NewBridge(nil))
	assert.NotEqual(t, prev, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}
