// Package problemgen produces arithmetic problems for the three difficulty
// tiers. The local generator is the always-available source and the
// correctness oracle; an optional LLM generator dresses the same expressions
// up as short word problems.
package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Generator produces a problem for a difficulty tier.
type Generator interface {
	Generate(ctx context.Context, difficulty int) (*Problem, error)
}

// LocalGenerator draws problems from fixed per-tier profiles:
//
//	tier 1: + and - on 1..10, no negative results
//	tier 2: + and - on 10..20 vs 1..10, × on times tables 2..12
//	tier 3: all four operations, ÷ constructed to whole-number quotients
type LocalGenerator struct {
	rng *rand.Rand
}

// NewLocal creates a time-seeded local generator.
func NewLocal() *LocalGenerator {
	now := uint64(time.Now().UnixNano())
	return NewLocalSeeded(now)
}

// NewLocalSeeded creates a deterministic local generator for tests.
func NewLocalSeeded(seed uint64) *LocalGenerator {
	return &LocalGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb)),
	}
}

// Generate produces a problem for the given tier. Unknown tiers are an error.
func (g *LocalGenerator) Generate(_ context.Context, difficulty int) (*Problem, error) {
	switch difficulty {
	case 1:
		return g.easy(), nil
	case 2:
		return g.medium(), nil
	case 3:
		return g.hard(), nil
	default:
		return nil, fmt.Errorf("problemgen: unknown difficulty %d", difficulty)
	}
}

func (g *LocalGenerator) easy() *Problem {
	op := OpAdd
	if g.rng.IntN(2) == 1 {
		op = OpSub
	}

	a := 1 + g.rng.IntN(10)
	b := 1 + g.rng.IntN(10)
	if op == OpSub && b > a {
		a, b = b, a
	}

	return g.build(a, b, op, 1)
}

func (g *LocalGenerator) medium() *Problem {
	ops := []Operation{OpAdd, OpSub, OpMul}
	op := ops[g.rng.IntN(len(ops))]

	var a, b int
	if op == OpMul {
		a = 2 + g.rng.IntN(11) // times tables 2..12
		b = 2 + g.rng.IntN(11)
	} else {
		a = 10 + g.rng.IntN(11)
		b = 1 + g.rng.IntN(10)
		if op == OpSub && b > a {
			a, b = b, a
		}
	}

	return g.build(a, b, op, 2)
}

func (g *LocalGenerator) hard() *Problem {
	ops := []Operation{OpAdd, OpSub, OpMul, OpDiv}
	op := ops[g.rng.IntN(len(ops))]

	var a, b int
	switch op {
	case OpMul:
		a = 5 + g.rng.IntN(11)
		b = 5 + g.rng.IntN(11)
	case OpDiv:
		// Construct from divisor and quotient so the result is whole.
		b = 2 + g.rng.IntN(11)
		quotient := 5 + g.rng.IntN(11)
		a = b * quotient
	case OpSub:
		a = 20 + g.rng.IntN(31)
		b = 5 + g.rng.IntN(16)
		if b > a {
			a, b = b, a
		}
	default:
		a = 20 + g.rng.IntN(31)
		b = 10 + g.rng.IntN(21)
	}

	return g.build(a, b, op, 3)
}

func (g *LocalGenerator) build(a, b int, op Operation, difficulty int) *Problem {
	return &Problem{
		Operand1:   a,
		Operand2:   b,
		Op:         op,
		Answer:     apply(a, b, op),
		Difficulty: difficulty,
	}
}
