package main

import (
	"errors"
	"testing"

	"github.com/qtxkit/qkdpad/bb84"
	"github.com/qtxkit/qkdpad/internal/config"
)

func TestBuildGeneratorHonorsChannelProfile(t *testing.T) {
	// A profile with a full intercept-resend adversary must flow into the
	// generator's channel, so negotiation aborts instead of running over a
	// silently perfect link.
	profile := config.Default()
	profile.Channel.InterceptRate = 1
	g, err := buildGenerator(profile, 99)
	if err != nil {
		t.Fatalf("buildGenerator: %v", err)
	}
	if _, _, err := g.Generate(128); !errors.Is(err, bb84.ErrEavesdropper) {
		t.Fatalf("Generate over intercepted channel: err = %v, want ErrEavesdropper", err)
	}
}

func TestBuildGeneratorDefaultProfile(t *testing.T) {
	g, err := buildGenerator(config.Default(), 99)
	if err != nil {
		t.Fatalf("buildGenerator: %v", err)
	}
	key, _, err := g.Generate(128)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if key.Size() == 0 {
		t.Error("empty key over a perfect channel")
	}
}

func TestBuildGeneratorRejectsBadRates(t *testing.T) {
	profile := config.Default()
	profile.Channel.NoiseRate = 2
	if _, err := buildGenerator(profile, 1); err == nil {
		t.Error("expected error for out-of-range noise rate")
	}
}
