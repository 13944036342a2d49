package engine

import (
	"errors"
	"fmt"
)

// ActionKind selects the handler for an Action.
type ActionKind uint8

const (
	ActionPlayCard  ActionKind = 0
	ActionAttack    ActionKind = 1
	ActionEndTurn   ActionKind = 2
	ActionHeroPower ActionKind = 3
	ActionDrawCard  ActionKind = 4
	ActionMulligan  ActionKind = 5
)

var actionNames = [...]string{
	ActionPlayCard:  "play_card",
	ActionAttack:    "attack",
	ActionEndTurn:   "end_turn",
	ActionHeroPower: "hero_power",
	ActionDrawCard:  "draw_card",
	ActionMulligan:  "mulligan",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// Validation errors. Handlers wrap these with detail; test with errors.Is.
var (
	ErrGameOver         = errors.New("game is already over")
	ErrNoState          = errors.New("no game state")
	ErrUnknownAction    = errors.New("unknown action type")
	ErrCardNotInHand    = errors.New("card not found in hand")
	ErrUnknownCard      = errors.New("card definition not found")
	ErrNotEnoughMana    = errors.New("not enough mana")
	ErrBoardFull        = errors.New("battlefield is full")
	ErrAttackerNotFound = errors.New("attacker not found")
	ErrCannotAttack     = errors.New("attacker cannot attack")
	ErrDefenderNotFound = errors.New("defender not found")
	ErrInvalidTarget    = errors.New("invalid attack target")
	ErrHeroPowerUsed    = errors.New("hero power already used this turn")
	ErrNotMulligan      = errors.New("not in mulligan phase")
	ErrMulliganDone     = errors.New("mulligan already submitted")
)

// Action is the inbound request envelope.
type Action struct {
	Kind           ActionKind `json:"kind"`
	CardInstanceID string     `json:"cardInstanceId,omitempty"`
	TargetID       string     `json:"targetId,omitempty"`
	AttackerID     string     `json:"attackerId,omitempty"`
	DefenderID     string     `json:"defenderId,omitempty"`

	// Mulligan only: the submitting side and the hand cards to replace.
	Side        uint8    `json:"side,omitempty"`
	InstanceIDs []string `json:"instanceIds,omitempty"`
}

// Result is the outbound envelope. StateHash is always the digest of State
// as returned, whether or not the action succeeded.
type Result struct {
	State     *GameState `json:"state"`
	StateHash string     `json:"stateHash"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
}

// Apply routes a to its handler and digests the resulting state. It holds no
// rules of its own. A rejected action leaves g unchanged.
func Apply(g *GameState, cat *Catalog, a Action) Result {
	if g == nil {
		return Result{Error: ErrNoState.Error()}
	}
	err := dispatch(g, cat, a)
	res := Result{State: g, StateHash: Hash(g), Success: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func dispatch(g *GameState, cat *Catalog, a Action) error {
	if g.IsGameOver() {
		return ErrGameOver
	}
	switch a.Kind {
	case ActionPlayCard:
		return g.PlayCard(cat, a.CardInstanceID, a.TargetID)
	case ActionAttack:
		return g.ProcessAttack(cat, a.AttackerID, a.DefenderID)
	case ActionEndTurn:
		return g.EndTurn(cat)
	case ActionHeroPower:
		return g.UseHeroPower(cat, a.TargetID)
	case ActionDrawCard:
		g.DrawCard(cat, g.CurrentTurn)
		g.CheckGameOver()
		return nil
	case ActionMulligan:
		return g.Mulligan(cat, a.Side, a.InstanceIDs)
	}
	return fmt.Errorf("%w: %d", ErrUnknownAction, uint8(a.Kind))
}
