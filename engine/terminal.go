package engine

// Fallen is a minion removed by a sweep, tagged with its owner.
type Fallen struct {
	Side uint8
	Card CardInstance
}

// RemoveDeadMinions moves every minion at or below zero health to its
// owner's graveyard. Each battlefield is walked back to front so removals
// never shift an index still to be visited. Deathrattles are not run here.
func (g *GameState) RemoveDeadMinions() []Fallen {
	var dead []Fallen
	for side := uint8(0); side < 2; side++ {
		p := &g.Players[side]
		for i := len(p.Battlefield) - 1; i >= 0; i-- {
			if p.Battlefield[i].CurrentHealth > 0 {
				continue
			}
			c := p.Battlefield[i]
			p.Battlefield = append(p.Battlefield[:i], p.Battlefield[i+1:]...)
			p.Graveyard = append(p.Graveyard, c)
			dead = append(dead, Fallen{Side: side, Card: c})
			g.emit(Event{Kind: EventMinionDied, Side: side, InstanceID: c.InstanceID, CardID: c.CardID})
		}
	}
	return dead
}

// resolveDeaths sweeps the board and runs deathrattles of the fallen, with
// their owner as the acting side, until a sweep finds nothing. The number of
// passes is bounded by Rules.MaxDeathChain.
func (g *GameState) resolveDeaths(cat *Catalog) {
	for pass := 0; pass < g.Rules.deathChainLimit(); pass++ {
		dead := g.RemoveDeadMinions()
		if len(dead) == 0 {
			return
		}
		for _, f := range dead {
			if f.Card.Silenced {
				continue
			}
			def := cat.def(f.Card.CardID)
			if def == nil || def.Deathrattle == nil {
				continue
			}
			g.ExecuteEffect(cat, f.Side, def.Deathrattle, f.Card.InstanceID, "")
		}
	}
	g.RemoveDeadMinions()
}

// CheckGameOver ends the match once a hero is at or below zero health. When
// both heroes fall together the side not currently acting wins.
func (g *GameState) CheckGameOver() {
	if g.IsGameOver() {
		return
	}
	selfDead := g.Players[PlayerSelf].HeroHealth <= 0
	oppDead := g.Players[PlayerOpponent].HeroHealth <= 0
	switch {
	case selfDead && oppDead:
		g.finish(opponentOf(g.CurrentTurn & 1))
	case selfDead:
		g.finish(PlayerOpponent)
	case oppDead:
		g.finish(PlayerSelf)
	}
}

func (g *GameState) finish(winner uint8) {
	g.Phase = PhaseGameOver
	g.Winner = int8(winner)
	g.emit(Event{Kind: EventGameOver, Side: winner})
}
