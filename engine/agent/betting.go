package agent

import "github.com/Dhenz14/norse-mythos-card-game-sub013/engine/poker"

// BettingPolicy bets by hand strength: raise with strong hands, call with
// middling ones, fold the rest when facing a bet.
type BettingPolicy struct {
	RaiseAt int
	CallAt  int
}

// DefaultBettingPolicy returns the thresholds used for automated seats.
func DefaultBettingPolicy() BettingPolicy {
	return BettingPolicy{RaiseAt: 70, CallAt: 35}
}

// Decide implements poker.Policy.
func (p BettingPolicy) Decide(v poker.View) (poker.Action, int) {
	strength := poker.HandStrength(v.Hole, v.Community)
	switch {
	case strength >= p.RaiseAt && v.Stake > v.ToCall:
		return poker.Raise, v.Betting.MinRaise()
	case v.ToCall == 0:
		return poker.Check, 0
	case strength >= p.CallAt:
		return poker.Call, 0
	}
	return poker.Fold, 0
}
