package engine

// boardScore is a material estimate for side: hero health and armor, minion
// stats, weapon damage and cards in hand.
func (g *GameState) boardScore(side uint8) int {
	p := &g.Players[side&1]
	score := p.HeroHealth + p.HeroArmor
	for _, m := range p.Battlefield {
		score += 2*m.CurrentAttack + m.CurrentHealth
		if m.IsTaunt {
			score += 2
		}
		if m.HasDivineShield {
			score += m.CurrentAttack
		}
	}
	if p.Weapon != nil {
		score += p.Weapon.CurrentAttack * p.Weapon.CurrentDurability
	}
	return score + 2*len(p.Hand)
}

// Evaluate returns side's material advantage over the other side. It is
// advisory and used only for automated play.
func (g *GameState) Evaluate(side uint8) int {
	side &= 1
	return g.boardScore(side) - g.boardScore(opponentOf(side))
}

// Utility returns the match outcome in [-1, +1] per side. Undecided matches
// score [0, 0].
func (g *GameState) Utility() [2]float32 {
	if !g.IsGameOver() || g.Winner == NoWinner {
		return [2]float32{0, 0}
	}
	var u [2]float32
	u[0], u[1] = -1, -1
	u[g.Winner&1] = 1
	return u
}
