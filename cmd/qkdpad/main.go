// qkdpad negotiates a simulated BB84 key long enough for a message, then
// encrypts and decrypts the message with the repeating-key XOR pad to
// demonstrate the round trip.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/qtxkit/qkdpad/bb84"
	"github.com/qtxkit/qkdpad/bb84/qubit"
	"github.com/qtxkit/qkdpad/internal/config"
	"github.com/qtxkit/qkdpad/pad"
	flag "github.com/spf13/pflag"
)

var (
	message = flag.String("message", "Hello, quantum world!",
		"The plaintext to encrypt. All characters must have code points below 256.")
	attempts = flag.Int("attempts", 16,
		"The maximum number of key-generation attempts before giving up.")
	profilePath = flag.String("profile", "",
		"Optional TOML profile for protocol tunables and channel noise.")
)

func main() {
	flag.Parse()
	profile := config.Default()
	if *profilePath != "" {
		var err error
		profile, err = config.Load(*profilePath)
		if err != nil {
			log.Fatalf("Loading profile: %v", err)
		}
	}
	seed := profile.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := buildGenerator(profile, seed)
	if err != nil {
		log.Fatalf("Building generator: %v", err)
	}

	// One-time-pad use wants at least one key bit per message bit. Sifting
	// yield is probabilistic, so keep negotiating until the key is long
	// enough.
	needed := 8 * len([]rune(*message))
	key := ""
	for i := 0; i < *attempts && len(key) < needed; i++ {
		k, stats, err := g.Generate(needed)
		if err != nil {
			log.Printf("Attempt %d aborted: %v", i+1, err)
			continue
		}
		log.Printf("Attempt %d: %d qubits sent, %d sifted, %d compared, %d key bits",
			i+1, stats.QubitsSent, stats.SiftedBits, stats.ComparedBits, stats.KeyBits)
		if k.Size() >= needed {
			key = k.String()
		}
	}
	if len(key) < needed {
		log.Fatalf("No sufficiently long key after %d attempts (need %d bits)", *attempts, needed)
	}

	ciphertext, err := pad.Encrypt(*message, key)
	if err != nil {
		log.Fatalf("Encrypting: %v", err)
	}
	plaintext, err := pad.Decrypt(ciphertext, key)
	if err != nil {
		log.Fatalf("Decrypting: %v", err)
	}

	fmt.Printf("key        (%d bits): %s\n", len(key), key)
	fmt.Printf("ciphertext (%d chars): %q\n", len([]rune(ciphertext)), ciphertext)
	fmt.Printf("plaintext  round trip: %q\n", plaintext)
	if plaintext != *message {
		log.Fatal("Round trip failed to recover the message")
	}
}

// buildGenerator assembles the simulated channel and generator described by
// a profile.
func buildGenerator(profile config.Profile, seed int64) (*bb84.Generator, error) {
	rnd := rand.New(rand.NewSource(seed))
	channel, err := qubit.NewChannel(profile.Channel.NoiseRate, profile.Channel.InterceptRate, rnd)
	if err != nil {
		return nil, err
	}
	return bb84.NewGenerator(bb84.GeneratorOpts{
		Rand:             rnd,
		Channel:          channel,
		Oversample:       profile.Protocol.Oversample,
		SampleProportion: profile.Protocol.SampleProportion,
	})
}
