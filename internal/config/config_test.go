package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeProfile(t, `
seed = 42

[protocol]
oversample = 8
sample_proportion = 0.25

[channel]
noise_rate = 0.02
intercept_rate = 1.0
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Seed != 42 {
		t.Errorf("Seed = %d, want 42", p.Seed)
	}
	if p.Protocol.Oversample != 8 || p.Protocol.SampleProportion != 0.25 {
		t.Errorf("Protocol = %+v", p.Protocol)
	}
	if p.Channel.NoiseRate != 0.02 || p.Channel.InterceptRate != 1.0 {
		t.Errorf("Channel = %+v", p.Channel)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeProfile(t, `
[channel]
intercept_rate = 0.5
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default().Protocol
	if p.Protocol != want {
		t.Errorf("Protocol = %+v, want defaults %+v", p.Protocol, want)
	}
	if p.Channel.InterceptRate != 0.5 {
		t.Errorf("InterceptRate = %v, want 0.5", p.Channel.InterceptRate)
	}
}

func TestLoadRejectsBadProfiles(t *testing.T) {
	tcs := []struct {
		name, body string
	}{
		{name: "zero oversample", body: "[protocol]\noversample = 0\n"},
		{name: "negative oversample", body: "[protocol]\noversample = -1\n"},
		{name: "sample proportion above one", body: "[protocol]\nsample_proportion = 1.5\n"},
		{name: "explicit zero sample proportion", body: "[protocol]\nsample_proportion = 0.0\n"},
		{name: "noise above one", body: "[channel]\nnoise_rate = 2.0\n"},
		{name: "negative intercept", body: "[channel]\nintercept_rate = -0.5\n"},
		{name: "not toml", body: "{\"oversample\": 4}"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeProfile(t, tc.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
