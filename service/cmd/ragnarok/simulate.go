package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/engine/agent"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/engine/poker"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/game"
)

// simResult is one simulated match and the poker duel fought after it.
type simResult struct {
	Seed    uint32
	Match   *game.Match
	Winner  string
	Combat  *poker.Outcome
	Players [2]string
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		seed     uint32
		games    int
		deckSize int
		combat   bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play bot-versus-bot matches and report the outcomes",
		Long: "Plays matches between two agents using the configured catalog and\n" +
			"persistence. After each match the two heroes settle a poker-combat\n" +
			"round with their remaining health at stake.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if games < 1 {
				return errors.New("--games must be at least 1")
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			st, err := a.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			results := make([]simResult, 0, games)
			for i := 0; i < games; i++ {
				r, err := a.simulate(cmd.Context(), cat, st, seed+uint32(i), deckSize)
				if err != nil {
					return err
				}
				if combat {
					r.Combat = duel(r.Match.State, r.Seed)
				}
				results = append(results, r)
			}
			return renderSimulation(results, combat)
		},
	}
	cmd.Flags().Uint32Var(&seed, "seed", 1, "seed of the first match; later matches add one")
	cmd.Flags().IntVarP(&games, "games", "n", 1, "number of matches")
	cmd.Flags().IntVar(&deckSize, "deck-size", 30, "cards per deck")
	cmd.Flags().BoolVar(&combat, "combat", true, "finish each match with a poker-combat round")
	return cmd
}

func (a *app) simulate(ctx context.Context, cat *engine.Catalog, st *stores, seed uint32, deckSize int) (simResult, error) {
	m := game.NewMatch(cat, a.log)
	m.TurnDuration = 0
	m.Journal, m.Cache = st.journal, st.cache

	names := [2]string{"Odin", "Loki"}
	for side, name := range names {
		deck, err := buildDeck(cat, deckSize, side)
		if err != nil {
			return simResult{}, err
		}
		p := &game.Player{Name: name, Bot: true, Seat: engine.Seat{Class: engine.ClassNeutral, Deck: deck}}
		if err := m.AddPlayer(p); err != nil {
			return simResult{}, err
		}
	}
	if err := m.Start(ctx, seed); err != nil {
		return simResult{}, err
	}
	if !m.GameOver {
		return simResult{}, fmt.Errorf("match %s stopped before a result", m.ID)
	}

	r := simResult{Seed: seed, Match: m, Players: names, Winner: "draw"}
	for i, p := range m.Players {
		if p.ID == m.Winner() {
			r.Winner = names[i]
		}
	}
	return r, nil
}

// buildDeck cycles through the catalog, starting offset cards in, so the
// two sides open with different draws.
func buildDeck(cat *engine.Catalog, size, offset int) ([]int, error) {
	ids := cat.IDs()
	if len(ids) == 0 {
		return nil, errors.New("catalog is empty")
	}
	deck := make([]int, size)
	for i := range deck {
		deck[i] = ids[(i+offset)%len(ids)]
	}
	return deck, nil
}

// duel runs one poker-combat round between the two heroes. Each side
// stakes its remaining health and strikes with its board's attack.
func duel(g *engine.GameState, seed uint32) *poker.Outcome {
	var hp, attack [2]int
	for side := range g.Players {
		p := &g.Players[side]
		hp[side] = max(p.HeroHealth, 1)
		for _, m := range p.Battlefield {
			attack[side] += m.CurrentAttack
		}
	}
	c := poker.NewCombat(engine.NewRand(seed), hp, attack)
	policy := agent.DefaultBettingPolicy()
	return c.Run([2]poker.Policy{policy, policy})
}
