// Package agent implements automated players: a one-ply greedy bot for the
// card game and a hand-strength policy for poker combat.
package agent

import (
	"fmt"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
)

// DefaultMaxSteps bounds the actions PlayTurn takes before ending the turn.
const DefaultMaxSteps = 64

// Bot picks, among the legal actions, the one whose resulting position
// scores best for the acting side. It ends the turn when nothing improves
// on the current position.
type Bot struct {
	Catalog *engine.Catalog
	// Weights scores positions. Nil uses GameState.Evaluate.
	Weights *Weights
	// MulliganCost returns opening cards that cost more. Zero uses MulliganCost.
	MulliganCost int
	MaxSteps     int
}

// NewBot returns a bot using the engine's evaluation.
func NewBot(cat *engine.Catalog) *Bot {
	return &Bot{Catalog: cat}
}

func (b *Bot) score(g *engine.GameState, side uint8) float64 {
	if g.IsGameOver() {
		if g.Winner == int8(side) {
			return winScore
		}
		return lossScore
	}
	if b.Weights == nil {
		return float64(g.Evaluate(side))
	}
	var f [InputDim]float32
	Encode(g, side, &f)
	return float64(b.Weights.Score(&f))
}

// Choose returns the action the bot would take in g. During the mulligan
// it answers for the first side that has not yet submitted.
func (b *Bot) Choose(g *engine.GameState) (engine.Action, error) {
	legal := engine.LegalActions(g, b.Catalog)
	if len(legal) == 0 {
		return engine.Action{}, engine.ErrGameOver
	}
	if legal[0].Kind == engine.ActionMulligan {
		return b.Mulligan(g, legal[0].Side), nil
	}

	side := g.ActingPlayer()
	best := legal[len(legal)-1]
	bestScore := b.score(g, side)
	for _, a := range legal[:len(legal)-1] {
		c := g.Clone()
		if res := engine.Apply(c, b.Catalog, a); !res.Success {
			continue
		}
		if s := b.score(c, side); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best, nil
}

// Mulligan returns side's mulligan: every opening card above the cost limit.
func (b *Bot) Mulligan(g *engine.GameState, side uint8) engine.Action {
	limit := b.MulliganCost
	if limit <= 0 {
		limit = MulliganCost
	}
	a := engine.Action{Kind: engine.ActionMulligan, Side: side}
	for _, c := range g.Players[side].Hand {
		if def, ok := b.Catalog.Lookup(c.CardID); ok && def.ManaCost > limit {
			a.InstanceIDs = append(a.InstanceIDs, c.InstanceID)
		}
	}
	return a
}

// PlayTurn applies the bot's choices to g until the turn passes, a
// mulligan is submitted or the match ends. It returns the applied actions.
func (b *Bot) PlayTurn(g *engine.GameState) ([]engine.Action, error) {
	limit := b.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}
	var played []engine.Action
	for step := 0; step < limit && !g.IsGameOver(); step++ {
		a, err := b.Choose(g)
		if err != nil {
			return played, err
		}
		if res := engine.Apply(g, b.Catalog, a); !res.Success {
			return played, fmt.Errorf("bot action %v rejected: %s", a.Kind, res.Error)
		}
		played = append(played, a)
		if a.Kind == engine.ActionEndTurn || a.Kind == engine.ActionMulligan {
			return played, nil
		}
	}
	if g.IsGameOver() {
		return played, nil
	}
	res := engine.Apply(g, b.Catalog, engine.Action{Kind: engine.ActionEndTurn})
	if !res.Success {
		return played, fmt.Errorf("bot end turn rejected: %s", res.Error)
	}
	return append(played, engine.Action{Kind: engine.ActionEndTurn}), nil
}
