package main

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"syncscore/adapters/excel"
	"syncscore/app"
	"syncscore/domain/score"
	"syncscore/internal/config"
	"syncscore/ports"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	scorer, err := buildScorer(cfg)
	if err != nil {
		log.Fatalf("Failed to build %s scorer: %v", cfg.Strategy, err)
	}

	ctx := context.Background()
	out := json.NewEncoder(os.Stdout)

	if cfg.InputFile != "" {
		scoreCapture(ctx, scorer, cfg.InputFile, out)
		return
	}
	runSynthetic(ctx, scorer, cfg, out)
}

func buildScorer(cfg *config.Config) (ports.Scorer, error) {
	switch cfg.Strategy {
	case config.StrategySimple:
		return app.NewSimpleScorer(cfg.ScoreConfig(), cfg.Seed)
	default:
		return app.NewEngine(cfg.ScoreConfig())
	}
}

// scoreCapture scores a single recorded session from an .xlsx/.csv capture.
func scoreCapture(ctx context.Context, scorer ports.Scorer, path string, out *json.Encoder) {
	inputs, err := excel.NewSessionReader(path).Read()
	if err != nil {
		log.Fatalf("Failed to read capture: %v", err)
	}

	result, err := scorer.Score(ctx, *inputs)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}
	if err := out.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

// runSynthetic drives a seeded synthetic four-layer session through the
// scorer, printing one result per step and a summary at the end.
func runSynthetic(ctx context.Context, scorer ports.Scorer, cfg *config.Config, out *json.Encoder) {
	gen := newGenerator(cfg.Seed)
	session := app.NewSession(scorer, score.LabelFrameFormed, score.LabelStrongBinding)

	for step := 0; step < cfg.Steps; step++ {
		result, err := session.Step(ctx, gen.next())
		if err != nil {
			log.Fatalf("Scoring failed at step %d: %v", step+1, err)
		}
		if err := out.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
	}

	summary := session.Summary()
	if err := out.Encode(summary); err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	log.Printf("[syncscore] %d steps, %d in target bands (%.1f%%), first crossing at step %d",
		summary.Steps, summary.Matched, summary.MatchedRatio*100, summary.CrossedAt)
}

// generator produces synthetic layer inputs whose coherence drifts over the
// run, so the session visits several label bands.
type generator struct {
	rng  *rand.Rand
	step int
	base time.Time
}

const (
	bodySamples = 64
	vectorDim   = 16
	sampleEvery = 2 * time.Millisecond
)

func newGenerator(seed int64) *generator {
	return &generator{
		rng:  rand.New(rand.NewSource(seed)),
		base: time.Unix(0, 0),
	}
}

func (g *generator) next() ports.Inputs {
	g.step++
	start := g.base.Add(time.Duration(g.step*bodySamples) * sampleEvery)

	// Coherence sweeps slowly between noisy and locked regimes.
	coherence := 0.5 + 0.5*math.Sin(float64(g.step)/25)

	body := score.LayerSignal{Layer: score.LayerBody}
	for i := 0; i < bodySamples; i++ {
		phase := 2 * math.Pi * 4 * float64(i) / bodySamples
		noise := (1 - coherence) * g.rng.NormFloat64() * 0.5
		body.Samples = append(body.Samples, score.Sample{
			At:    start.Add(time.Duration(i) * sampleEvery),
			Value: math.Sin(phase) + noise,
		})
	}

	qualia := g.vector(score.LayerQualia, coherence, 0)
	structure := g.vector(score.LayerStructure, coherence, 0.2)
	memory := g.vector(score.LayerMemory, coherence, 0.4)

	return ports.Inputs{Body: body, Qualia: qualia, Structure: structure, Memory: memory}
}

func (g *generator) vector(layer score.Layer, coherence, lag float64) score.LayerVector {
	values := make([]float64, vectorDim)
	for i := range values {
		phase := 2*math.Pi*2*float64(i)/vectorDim - lag*(1-coherence)
		values[i] = math.Sin(phase) + (1-coherence)*g.rng.NormFloat64()*0.5
	}
	return score.LayerVector{Layer: layer, Values: values}
}
