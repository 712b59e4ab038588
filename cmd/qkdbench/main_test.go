package main

import (
	"math"
	"testing"

	"github.com/qtxkit/qkdpad/internal/config"
)

func TestBenchPerfectChannel(t *testing.T) {
	old := *trials
	*trials = 50
	defer func() { *trials = old }()

	res, err := bench(config.Default(), 7, 64, 0)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if res.Aborts != 0 {
		t.Errorf("Aborts = %d, want 0 over a perfect channel", res.Aborts)
	}
	if res.MeanQBER != 0 {
		t.Errorf("MeanQBER = %v, want 0 over a perfect channel", res.MeanQBER)
	}
	if res.MeanKeyBits <= 0 {
		t.Errorf("MeanKeyBits = %v, want > 0", res.MeanKeyBits)
	}
}

func TestBenchQBERIgnoresComparisonFreeTrials(t *testing.T) {
	// With one requested key bit only a handful of positions survive
	// sifting, so many attempts disclose nothing at all. Those attempts
	// carry no error information; under a full intercept-resend adversary
	// the mean QBER over the remaining attempts must sit near the 25%
	// disturbance rate rather than being dragged down by zeros.
	old := *trials
	*trials = 2000
	defer func() { *trials = old }()

	res, err := bench(config.Default(), 7, 1, 1)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if math.Abs(res.MeanQBER-0.25) > 0.05 {
		t.Errorf("MeanQBER = %v, want 0.25±0.05", res.MeanQBER)
	}
}
