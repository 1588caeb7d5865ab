package engine

import (
	"math"
	"math/rand"
)

// Agent picks moves with a one-ply material-greedy search: each candidate
// is applied to a cloned board and scored by the resulting material balance
// plus a small bonus for the captured piece. Ties are broken in favor of
// the highest-value capture, then uniformly at random.
//
// The random source is injected so callers (and tests) can make the agent
// deterministic.
type Agent struct {
	rng *rand.Rand
}

// NewAgent returns an agent seeded with seed.
func NewAgent(seed int64) *Agent {
	return NewAgentRand(rand.New(rand.NewSource(seed)))
}

// NewAgentRand returns an agent drawing from rng.
func NewAgentRand(rng *rand.Rand) *Agent {
	return &Agent{rng: rng}
}

// ChooseMove returns the agent's move for side c, or false when the side
// has no pseudo-legal moves. The caller decides what a move-less side
// means; the agent makes no checkmate/stalemate judgment.
func (a *Agent) ChooseMove(b *Board, c Color) (Move, bool) {
	candidates := Moves(b, c)
	if len(candidates) == 0 {
		return Move{}, false
	}

	bestScore := math.Inf(-1)
	var best []Move
	for _, m := range candidates {
		// Capture bonus is read before the move is simulated; Apply
		// overwrites the destination.
		bonus := b.Piece(m.To).Kind.Value()

		sim := b.Clone()
		sim.Apply(m)
		score := float64(sim.MaterialScore(c)) + 0.1*float64(bonus)

		// Exact equality keeps the tie set exact: the fractional part
		// only ever comes from the fixed 0.1-scaled integer bonus.
		if score > bestScore {
			bestScore = score
			best = best[:0]
			best = append(best, m)
		} else if score == bestScore {
			best = append(best, m)
		}
	}

	// Among the tied best, prefer the moves capturing the single
	// highest-value piece.
	var captures []Move
	capValue := 0
	for _, m := range best {
		t := b.Piece(m.To)
		if t == NoPiece {
			continue
		}
		switch v := t.Kind.Value(); {
		case v > capValue:
			captures = captures[:0]
			captures = append(captures, m)
			capValue = v
		case v == capValue:
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 {
		return captures[a.rng.Intn(len(captures))], true
	}
	return best[a.rng.Intn(len(best))], true
}
