package telemetry

import (
	"context"
	"strings"
	"testing"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Service: "dynamicmob"})
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown returned %v", err)
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{
		Service:     "dynamicmob",
		Endpoint:    "http://127.0.0.1:4318",
		SampleRatio: 0.25,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Nothing was recorded, so shutdown has nothing to flush.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSampler(t *testing.T) {
	for _, r := range []float64{0, -1, 1, 2} {
		if got := sampler(r).Description(); got != "AlwaysOnSampler" {
			t.Fatalf("ratio %v: sampler = %s", r, got)
		}
	}
	if got := sampler(0.25).Description(); !strings.HasPrefix(got, "TraceIDRatioBased") {
		t.Fatalf("ratio 0.25: sampler = %s", got)
	}
}
