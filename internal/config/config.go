// Package config loads the TOML simulation profiles shared by the qkdpad
// commands.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// A Profile holds the tunable parameters for a simulated key exchange.
type Profile struct {
	// Protocol holds the key-generation tunables.
	Protocol ProtocolConfig `toml:"protocol"`

	// Channel holds the quantum-link disturbance model.
	Channel ChannelConfig `toml:"channel"`

	// Seed seeds the simulation's randomness source. Zero means seed from
	// the clock.
	Seed int64 `toml:"seed"`
}

// ProtocolConfig holds the key-generation tunables.
type ProtocolConfig struct {
	// Oversample is the ratio of qubits exchanged to key bits requested.
	Oversample int `toml:"oversample"`

	// SampleProportion is the fraction of sifted bits disclosed for the
	// eavesdropper check.
	SampleProportion float64 `toml:"sample_proportion"`
}

// ChannelConfig holds the quantum-link disturbance model.
type ChannelConfig struct {
	// NoiseRate is the independent bit-flip probability per qubit.
	NoiseRate float64 `toml:"noise_rate"`

	// InterceptRate is the per-qubit probability of an intercept-resend
	// eavesdropper.
	InterceptRate float64 `toml:"intercept_rate"`
}

// Default returns the reference protocol parameters over a perfect channel.
func Default() Profile {
	return Profile{
		Protocol: ProtocolConfig{
			Oversample:       4,
			SampleProportion: 0.5,
		},
	}
}

// Load reads a profile from the TOML file at path, filling unset fields from
// Default.
func Load(path string) (Profile, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, fmt.Errorf("loading profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate reports the first nonsensical parameter, if any.
func (p Profile) Validate() error {
	if p.Protocol.Oversample < 1 {
		return fmt.Errorf("protocol.oversample must be positive, got %d", p.Protocol.Oversample)
	}
	// The generator treats a zero proportion as "use the default", so an
	// explicit zero in a profile would silently become 0.5; reject it here.
	if p.Protocol.SampleProportion <= 0 || p.Protocol.SampleProportion > 1 {
		return fmt.Errorf("protocol.sample_proportion %v outside (0, 1]", p.Protocol.SampleProportion)
	}
	if p.Channel.NoiseRate < 0 || p.Channel.NoiseRate > 1 {
		return fmt.Errorf("channel.noise_rate %v outside [0, 1]", p.Channel.NoiseRate)
	}
	if p.Channel.InterceptRate < 0 || p.Channel.InterceptRate > 1 {
		return fmt.Errorf("channel.intercept_rate %v outside [0, 1]", p.Channel.InterceptRate)
	}
	return nil
}
