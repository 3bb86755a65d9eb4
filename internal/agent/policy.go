// File: internal/agent/policy.go
package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/xkilldash9x/gridpilot/api/schemas"
)

// Policy selects the next gameplay action for an active game. Implementations
// must only return playable (non-RESET) kinds; session control is handled by
// the Agent before the policy is consulted.
type Policy interface {
	ChooseAction(history []schemas.Frame, latest schemas.Frame) (schemas.Action, error)
}

// RandomPolicy picks uniformly from the playable action universe. It is the
// degenerate baseline policy; real strategies plug into the same interface.
type RandomPolicy struct {
	rng *rand.Rand
}

// Statically assert that RandomPolicy implements the Policy interface.
var _ Policy = (*RandomPolicy)(nil)

// NewRandomPolicy creates a policy with its own instance-scoped random source
// so concurrent sessions and tests stay independent. A zero seed derives one
// from the wall clock.
func NewRandomPolicy(seed int64) *RandomPolicy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

// ChooseAction draws a playable kind uniformly at random. Simple kinds get a
// short free-text justification; complex kinds get uniform in-bounds
// coordinates plus a structured rationale.
func (p *RandomPolicy) ChooseAction(_ []schemas.Frame, _ schemas.Frame) (schemas.Action, error) {
	kinds := schemas.PlayableKinds()
	kind := kinds[p.rng.Intn(len(kinds))]

	if kind.IsComplex() {
		return schemas.Action{
			Kind: kind,
			Coordinates: &schemas.Coordinates{
				X: p.rng.Intn(schemas.GridMax + 1),
				Y: p.rng.Intn(schemas.GridMax + 1),
			},
			Rationale: &schemas.Rationale{
				DesiredAction: string(kind),
				Reason:        "RNG said so",
			},
		}, nil
	}

	return schemas.Action{
		Kind:      kind,
		Reasoning: fmt.Sprintf("RNG told me to pick %s", kind),
	}, nil
}
