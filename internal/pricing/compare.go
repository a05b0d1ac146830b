package pricing

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Comparison is one store's price for an item. Ephemeral, never persisted.
type Comparison struct {
	Store string  `json:"store"`
	Price float64 `json:"price"`
}

// Source yields store/price pairs for a named item.
type Source interface {
	Compare(ctx context.Context, item string) ([]Comparison, error)
}

// Generator produces mock-randomized comparisons across a fixed 3-store set.
// It stands in for a live price feed: every call may yield different values
// for the same item. Per-store jitter is asymmetric, so one store trends
// cheaper, one more expensive, and one stays roughly centered.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator around the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Compare returns exactly three comparisons sorted ascending by price.
// It never fails and never returns an empty list.
func (g *Generator) Compare(_ context.Context, _ string) ([]Comparison, error) {
	g.mu.Lock()
	base := 1 + g.rng.Float64()*5

	out := []Comparison{
		{Store: "Whole Foods", Price: round2(base * (1 + g.rng.Float64()*0.3))},
		{Store: "Trader Joe's", Price: round2(base * (1 - g.rng.Float64()*0.2))},
		{Store: "Safeway", Price: round2(base * (1 + g.rng.Float64()*0.1 - 0.05))},
	}
	g.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
