package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pokerduel/pokerduel/cmd/pokerduel/shared"
	"github.com/pokerduel/pokerduel/internal/duel"
	"github.com/pokerduel/pokerduel/internal/engine"
	"github.com/pokerduel/pokerduel/internal/notify"
	"github.com/pokerduel/pokerduel/internal/randutil"
	"github.com/pokerduel/pokerduel/internal/store"
)

// SimulateCmd plays full duels between two random policies against the
// in-memory store. Useful for smoke-testing rule changes and for eyeballing
// outcome distributions.
type SimulateCmd struct {
	Matches int   `kong:"default='1000',help='Number of duels to play'"`
	Seed    int64 `kong:"default='0',help='RNG seed (0 for random)'"`
	Workers int   `kong:"default='0',help='Concurrent workers (0 for GOMAXPROCS)'"`
	Verbose bool  `kong:"short='V',help='Log every action'"`
}

type simResult struct {
	winner  string // "a", "b" or "" for a draw
	actions int
	err     error
}

func (c *SimulateCmd) Run() error {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := shared.SetupLogger("warn", c.Verbose)

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	fmt.Printf("Simulating %d duels (seed %d, %d workers)\n\n", c.Matches, seed, workers)
	start := time.Now()

	results := make([]simResult, c.Matches)
	var next int
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				mu.Lock()
				i := next
				next++
				mu.Unlock()
				if i >= c.Matches {
					return nil
				}

				res := playDuel(ctx, seed+int64(i), logger)
				results[i] = res
				if res.err != nil {
					return fmt.Errorf("duel %d: %w", i, res.err)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var aWins, bWins, draws, actions int
	for _, r := range results {
		actions += r.actions
		switch r.winner {
		case "a":
			aWins++
		case "b":
			bWins++
		default:
			draws++
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("Results\n")
	fmt.Printf("  player a wins:  %6d (%.1f%%)\n", aWins, pct(aWins, c.Matches))
	fmt.Printf("  player b wins:  %6d (%.1f%%)\n", bWins, pct(bWins, c.Matches))
	fmt.Printf("  draws:          %6d (%.1f%%)\n", draws, pct(draws, c.Matches))
	fmt.Printf("  actions/duel:   %6.1f\n", float64(actions)/float64(c.Matches))
	fmt.Printf("  elapsed:        %s (%.0f duels/sec)\n",
		elapsed.Round(time.Millisecond), float64(c.Matches)/elapsed.Seconds())

	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// playDuel runs one duel to completion with both seats on a random policy.
func playDuel(ctx context.Context, seed int64, logger *log.Logger) simResult {
	rng := randutil.New(seed)
	eng := engine.New(store.NewMemoryStore(), notify.Nop{}, logger,
		engine.WithRNG(func() *rand.Rand { return rng }),
	)

	snap, err := eng.StartMatch(ctx, []string{"a", "b"})
	if err != nil {
		return simResult{err: err}
	}

	var actions int
	for !snap.GameOver {
		actions++
		if actions > 1000 {
			return simResult{err: fmt.Errorf("duel did not terminate")}
		}

		actor := snap.Current
		view, err := eng.GetHand(ctx, snap.MatchID, actor)
		if err != nil {
			return simResult{err: err}
		}

		if view.Phase == duel.PhaseDraw {
			snap, err = eng.Discard(ctx, view.MatchID, actor, randomDiscard(rng))
			if err != nil {
				return simResult{err: err}
			}
			continue
		}

		action, amount := randomAction(rng, view)
		snap, err = eng.PlaceBet(ctx, view.MatchID, actor, string(action), amount)
		if err != nil {
			return simResult{err: err}
		}
	}

	switch snap.Winner {
	case "a", "b":
		return simResult{winner: snap.Winner, actions: actions}
	default:
		return simResult{actions: actions}
	}
}

// randomDiscard picks between zero and three distinct card positions.
func randomDiscard(rng *rand.Rand) []int {
	n := rng.IntN(4)
	positions := rng.Perm(5)[:n]
	indices := make([]int, n)
	for i, p := range positions {
		indices[i] = p + 1
	}
	return indices
}

// randomAction leans toward calling and betting small, folding rarely.
func randomAction(rng *rand.Rand, view *engine.Snapshot) (duel.Action, int) {
	choices := view.ValidActions
	if len(choices) == 0 {
		return duel.ActionFold, 0
	}

	// Fold one time in ten; otherwise prefer the aggressive options.
	if rng.IntN(10) == 0 || len(choices) == 1 {
		return duel.ActionFold, 0
	}

	action := choices[1+rng.IntN(len(choices)-1)]
	switch action {
	case duel.ActionBet:
		minBet := duel.DefaultRules().MinBet
		amount := minBet * (1 + rng.IntN(4))
		if chips := view.Chips[view.Current]; amount > chips {
			amount = chips
		}
		return action, amount
	case duel.ActionRaise:
		opp := 0
		for p, b := range view.Bets {
			if p != view.Current {
				opp = b
			}
		}
		return action, opp + duel.DefaultRules().MinBet
	default:
		return action, 0
	}
}
