// qkdbench runs simulated BB84 key generation for each entry in the
// cartesian product of a collection of tuning parameters, e.g. requested key
// length and eavesdropper intercept rate, and outputs a CSV of relevant
// statistics for each combination, e.g. abort counts and final key lengths.
package main

import (
	"log"
	"math/rand"
	"os"
	"text/template"
	"time"

	"github.com/qtxkit/qkdpad/bb84"
	"github.com/qtxkit/qkdpad/bb84/qubit"
	"github.com/qtxkit/qkdpad/internal/config"
	flag "github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"
)

var (
	keyBits = flag.IntSlice("key-bits", []int{64, 128, 256},
		"The minimum key lengths, in bits, to request per attempt.")
	intercepts = flag.Float64Slice("intercepts", []float64{0, 0.1, 1},
		"The per-qubit intercept-resend probabilities to simulate.")
	trials = flag.Int("trials", 100,
		"The number of key-generation attempts per parameter combination.")
	profilePath = flag.String("profile", "",
		"Optional TOML profile for protocol tunables and channel noise.")
)

const (
	header   = "KeyBits, Intercept, Trials, Aborts, MeanKeyBits, StdDevKeyBits, MeanQBER"
	lineTmpl = "{{.KeyBits}}, {{.Intercept}}, {{.Trials}}, {{.Aborts}}, {{printf \"%.1f\" .MeanKeyBits}}, {{printf \"%.1f\" .StdDevKeyBits}}, {{printf \"%.4f\" .MeanQBER}}\n"
)

// A Result packages together the outcome of benchmarking a single
// parameterization for easy formatting.
type Result struct {
	KeyBits       int
	Intercept     float64
	Trials        int
	Aborts        int
	MeanKeyBits   float64
	StdDevKeyBits float64
	MeanQBER      float64
}

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

	os.Stdout.WriteString(header + "\n")
	tmpl := template.Must(template.New("line").Parse(lineTmpl))
	for _, kb := range *keyBits {
		for _, intercept := range *intercepts {
			r, err := bench(profile, seed, kb, intercept)
			if err != nil {
				log.Fatalf("Benching (keyBits: %d, intercept: %v): %v", kb, intercept, err)
			}
			if err := tmpl.Execute(os.Stdout, r); err != nil {
				log.Fatalf("Formatting result: %v", err)
			}
		}
	}
}

func bench(profile config.Profile, seed int64, kb int, intercept float64) (Result, error) {
	rnd := rand.New(rand.NewSource(seed))
	channel, err := qubit.NewChannel(profile.Channel.NoiseRate, intercept, rnd)
	if err != nil {
		return Result{}, err
	}
	g, err := bb84.NewGenerator(bb84.GeneratorOpts{
		Rand:             rnd,
		Channel:          channel,
		Oversample:       profile.Protocol.Oversample,
		SampleProportion: profile.Protocol.SampleProportion,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{KeyBits: kb, Intercept: intercept, Trials: *trials}
	var keyLens, qbers []float64
	for i := 0; i < *trials; i++ {
		key, stats, err := g.Generate(kb)
		// QBER is only defined for attempts that disclosed something;
		// insufficient-key aborts would otherwise dilute the mean with
		// zeros.
		if stats.ComparedBits > 0 {
			qbers = append(qbers, stats.QBER)
		}
		if err != nil {
			res.Aborts++
			continue
		}
		keyLens = append(keyLens, float64(key.Size()))
	}
	if len(keyLens) > 0 {
		res.MeanKeyBits = stat.Mean(keyLens, nil)
		res.StdDevKeyBits = stat.StdDev(keyLens, nil)
	}
	if len(qbers) > 0 {
		res.MeanQBER = stat.Mean(qbers, nil)
	}
	return res, nil
}
