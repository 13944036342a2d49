package engine

// EndTurn runs the end-of-turn pipeline. The step order is fixed: overload
// commits before the turn flips, mana refreshes after it, and the draw comes
// last.
func (g *GameState) EndTurn(cat *Catalog) error {
	if g.IsGameOver() {
		return ErrGameOver
	}
	ending := g.CurrentTurn & 1

	// Only minions already on the incoming side's board have waited a full
	// turn. Deathrattles in the sweeps below may summon more.
	rested := make(map[string]bool, len(g.Players[opponentOf(ending)].Battlefield))
	for _, m := range g.Players[opponentOf(ending)].Battlefield {
		rested[m.InstanceID] = true
	}

	// 1. End-of-turn effects for the side that just acted.
	g.endOfTurn(cat, ending)

	// 2. Overload played this turn locks mana next turn.
	mana := &g.Players[ending].Mana
	mana.Overloaded = mana.PendingOverload
	mana.PendingOverload = 0

	// 3-4. Flip the turn; a full round has passed once play returns to the first side.
	g.CurrentTurn = opponentOf(ending)
	if g.CurrentTurn == PlayerSelf {
		g.TurnNumber++
	}
	next := g.CurrentTurn
	p := &g.Players[next]

	// 5. Refresh mana.
	if p.Mana.Max < g.Rules.manaLimit() {
		p.Mana.Max++
	}
	p.Mana.Current = p.Mana.Max - p.Mana.Overloaded
	if p.Mana.Current < 0 {
		p.Mana.Current = 0
	}
	p.Mana.Overloaded = 0

	// 6. Per-turn counters and minion readiness.
	p.CardsPlayedThisTurn = 0
	p.AttacksPerformedThisTurn = 0
	p.HeroPower.Used = false
	for i := range p.Battlefield {
		m := &p.Battlefield[i]
		m.AttacksPerformed = 0
		m.HasAttacked = false
		if !m.HasCharge && !m.IsRush && rested[m.InstanceID] {
			m.IsSummoningSick = false
		}
		m.CanAttack = !m.IsSummoningSick || m.HasCharge || m.IsRush
	}

	// 7. Start-of-turn effects.
	g.startOfTurn(next)
	g.emit(Event{Kind: EventTurnStarted, Side: next, Amount: g.TurnNumber})

	// 8. Draw.
	g.DrawCard(cat, next)

	// 9. Fatigue or end-of-turn damage may have decided the match.
	g.resolveDeaths(cat)
	g.CheckGameOver()
	return nil
}

// endOfTurn thaws minions that sat out the turn, applies poison, wears the
// weapon down by the hero's swings, and sweeps the board.
func (g *GameState) endOfTurn(cat *Catalog, side uint8) {
	p := &g.Players[side]
	for i := range p.Battlefield {
		m := &p.Battlefield[i]
		if m.IsFrozen && m.AttacksPerformed == 0 {
			m.IsFrozen = false
		}
		if m.IsPoisonedDoT {
			DealDamageToMinion(m, g.Rules.poisonDamage())
		}
	}
	if w := p.Weapon; w != nil && p.AttacksPerformedThisTurn > 0 {
		w.CurrentDurability -= p.AttacksPerformedThisTurn
		if w.CurrentDurability <= 0 {
			p.Graveyard = append(p.Graveyard, *w)
			p.Weapon = nil
			g.emit(Event{Kind: EventWeaponBroken, Side: side, InstanceID: w.InstanceID, CardID: w.CardID})
		}
	}
	g.resolveDeaths(cat)
}

// startOfTurn is the hook for start-of-turn triggers. Paralysis and weakness
// are consulted when an attack resolves, so nothing happens here yet.
func (g *GameState) startOfTurn(side uint8) {}
