// File: api/schemas/actions.go
package schemas

import "fmt"

// GridMax is the inclusive upper bound for both coordinate axes of the game
// grid. Coordinate actions address cells in [0, GridMax] x [0, GridMax].
const GridMax = 63

// ActionKind identifies one submittable move type.
type ActionKind string

const (
	// ActionReset (re)starts a session. It is reserved for session control
	// and is never produced by the ordinary gameplay selection path.
	ActionReset ActionKind = "RESET"

	ActionUp    ActionKind = "ACTION1"
	ActionDown  ActionKind = "ACTION2"
	ActionLeft  ActionKind = "ACTION3"
	ActionRight ActionKind = "ACTION4"
	ActionUse   ActionKind = "ACTION5"

	// ActionClick is the only complex kind: it carries a coordinate payload.
	ActionClick ActionKind = "ACTION6"
)

// PlayableKinds returns every action kind legal for ordinary gameplay,
// i.e. the full universe minus the reserved RESET kind.
func PlayableKinds() []ActionKind {
	return []ActionKind{ActionUp, ActionDown, ActionLeft, ActionRight, ActionUse, ActionClick}
}

// IsSimple reports whether the kind is submitted bare, without a payload.
func (k ActionKind) IsSimple() bool {
	switch k {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionUse:
		return true
	}
	return false
}

// IsComplex reports whether the kind requires a structured coordinate payload.
func (k ActionKind) IsComplex() bool {
	return k == ActionClick
}

// Coordinates is the payload for complex action kinds. Both axes are bounded
// to [0, GridMax] inclusive.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rationale is the structured justification attached to complex actions,
// separating what was chosen from why.
type Rationale struct {
	DesiredAction string `json:"desired_action"`
	Reason        string `json:"reason"`
}

// Action is one submitted move: a kind, plus a coordinate payload for complex
// kinds. Simple kinds carry free-text reasoning; complex kinds carry a
// structured rationale instead.
type Action struct {
	Kind        ActionKind   `json:"kind"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Reasoning   string       `json:"reasoning,omitempty"`
	Rationale   *Rationale   `json:"rationale,omitempty"`
}

// NewReset returns the session-control RESET action.
func NewReset(reasoning string) Action {
	return Action{Kind: ActionReset, Reasoning: reasoning}
}

// Validate checks the action against its kind's declared schema. A complex
// kind must carry in-bounds coordinates; a simple kind must not carry any.
// A schema violation here is a caller error and gameplay must not proceed
// on it.
func (a Action) Validate() error {
	if a.Kind.IsComplex() {
		if a.Coordinates == nil {
			return fmt.Errorf("action %s requires a coordinate payload", a.Kind)
		}
		if a.Coordinates.X < 0 || a.Coordinates.X > GridMax {
			return fmt.Errorf("action %s: x=%d outside [0, %d]", a.Kind, a.Coordinates.X, GridMax)
		}
		if a.Coordinates.Y < 0 || a.Coordinates.Y > GridMax {
			return fmt.Errorf("action %s: y=%d outside [0, %d]", a.Kind, a.Coordinates.Y, GridMax)
		}
		return nil
	}
	if a.Coordinates != nil {
		return fmt.Errorf("action %s does not accept a coordinate payload", a.Kind)
	}
	return nil
}
